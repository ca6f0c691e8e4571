package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/technotes/notes-system/internal/core/ports"
)

// NoteHandler handles HTTP requests for note operations.
type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

func ticketParam(c echo.Context) (int64, error) {
	ticket, err := strconv.ParseInt(c.Param("ticket"), 10, 64)
	if err != nil || ticket <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "ticket must be a positive number")
	}
	return ticket, nil
}

// List handles GET /notes/all.
//
// @Summary      List notes
// @Description  Elevated actors receive every note; others only their own.
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse{data=[]noteResponse}
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /notes/all [get]
func (h *NoteHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	notes, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: toNoteListResponse(notes)})
}

// Get handles GET /notes/:ticket.
//
// @Summary      Get a note by ticket number
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        ticket  path      int  true  "Ticket number"
// @Success      200     {object}  dataResponse{data=noteResponse}
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /notes/{ticket} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	ticket, err := ticketParam(c)
	if err != nil {
		return err
	}

	note, err := h.service.Get(c.Request().Context(), actor, ticket)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: toNoteResponse(note)})
}

// Create handles POST /notes/create.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNoteRequest  true  "Note fields"
// @Success      201   {object}  dataResponse{data=noteResponse}
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /notes/create [post]
func (h *NoteHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.service.Create(c.Request().Context(), actor, ports.CreateNoteInput{
		Title:     req.Title,
		Text:      req.Text,
		Completed: req.Completed,
		Owner:     req.User,
		OwnerID:   req.UserID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dataResponse{Success: true, Data: toNoteResponse(note)})
}

// Update handles PATCH /notes/:ticket/update.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        ticket  path      int                true  "Ticket number"
// @Param        body    body      updateNoteRequest  true  "Fields to change"
// @Success      200     {object}  dataResponse{data=noteResponse}
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /notes/{ticket}/update [patch]
func (h *NoteHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	ticket, err := ticketParam(c)
	if err != nil {
		return err
	}

	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	note, err := h.service.Update(c.Request().Context(), actor, ticket, ports.UpdateNoteInput{
		Title:     req.Title,
		Text:      req.Text,
		Completed: req.Completed,
		Owner:     req.User,
		OwnerID:   req.UserID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: toNoteResponse(note)})
}

// Delete handles DELETE /notes/:ticket/delete.
//
// @Summary      Delete a note
// @Description  Reserved to the Manager/Admin tier regardless of ownership.
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        ticket  path      int  true  "Ticket number"
// @Success      200     {object}  dataResponse{data=noteResponse}
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /notes/{ticket}/delete [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	ticket, err := ticketParam(c)
	if err != nil {
		return err
	}

	note, err := h.service.Delete(c.Request().Context(), actor, ticket)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: toNoteResponse(note)})
}
