package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medical-scheduler/internal/dto"
	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/medical-scheduler/internal/usecase/appointment"
	ucReport "github.com/BruksfildServices01/medical-scheduler/internal/usecase/report"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	list   *ucAppointment.ListAppointments
	get    *ucAppointment.GetAppointment
	create *ucAppointment.CreateAppointment
	update *ucAppointment.UpdateAppointment
	delete *ucAppointment.DeleteAppointment
	export *ucAppointment.ExportAppointment
	stats  *ucReport.GetAppointmentStats
	loc    *time.Location
}

func NewAppointmentHandler(
	list *ucAppointment.ListAppointments,
	get *ucAppointment.GetAppointment,
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	del *ucAppointment.DeleteAppointment,
	export *ucAppointment.ExportAppointment,
	stats *ucReport.GetAppointmentStats,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:   list,
		get:    get,
		create: create,
		update: update,
		delete: del,
		export: export,
		stats:  stats,
		loc:    loc,
	}
}

// ======================================================
// REQUESTS / RESPONSES
// ======================================================

// CreateAppointmentRequest has no patient field: the patient is always
// the caller.
type CreateAppointmentRequest struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date" binding:"omitempty,isodatetime"`
	Reason   string `json:"reason"`
	Notes    string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ID       string  `json:"id"`
	Status   *string `json:"status"`
	Date     *string `json:"date" binding:"omitempty,isodatetime"`
	Reason   *string `json:"reason"`
	Notes    *string `json:"notes"`
	DoctorID *string `json:"doctorId"`
}

type DeleteAppointmentRequest struct {
	ID string `json:"id"`
}

type AppointmentMutationResponse struct {
	Message     string              `json:"message"`
	Appointment *dto.AppointmentDTO `json:"appointment,omitempty"`
	Warnings    []string            `json:"warnings,omitempty"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	from, to, err := parseRange(c, h.loc)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out, err := h.list.Execute(c.Request.Context(), actor, ucAppointment.ListAppointmentsInput{
		From: from,
		To:   to,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	out, err := h.get.Execute(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.create.Execute(c.Request.Context(), actor, ucAppointment.CreateAppointmentInput{
		DoctorID: req.DoctorID,
		Date:     req.Date,
		Reason:   req.Reason,
		Notes:    req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, AppointmentMutationResponse{
		Message:     "Appointment created successfully",
		Appointment: res.Appointment,
		Warnings:    res.Warnings,
	})
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	// an empty body is an empty patch
	var req UpdateAppointmentRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return
		}
	}

	res, err := h.update.Execute(
		c.Request.Context(),
		actor,
		pathOrBody(c, req.ID),
		ucAppointment.UpdateAppointmentInput{
			Status:   req.Status,
			Date:     req.Date,
			Reason:   req.Reason,
			Notes:    req.Notes,
			DoctorID: req.DoctorID,
		},
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, AppointmentMutationResponse{
		Message:     "Appointment updated successfully",
		Appointment: res.Appointment,
		Warnings:    res.Warnings,
	})
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req DeleteAppointmentRequest
	if c.Param("id") == "" && c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return
		}
	}

	res, err := h.delete.Execute(c.Request.Context(), actor, pathOrBody(c, req.ID))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, AppointmentMutationResponse{
		Message:  "Appointment deleted successfully",
		Warnings: res.Warnings,
	})
}

// ======================================================
// EXPORT
// ======================================================

func (h *AppointmentHandler) ExportPDF(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	doc, err := h.export.Execute(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}

// ======================================================
// STATS
// ======================================================

func (h *AppointmentHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}
