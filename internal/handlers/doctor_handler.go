package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/medical-scheduler/internal/middleware"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
	ucDoctor "github.com/BruksfildServices01/medical-scheduler/internal/usecase/doctor"
)

const maxPhotoBytes = 5 << 20

type DoctorHandler struct {
	list         *ucDoctor.ListDoctors
	get          *ucDoctor.GetDoctor
	create       *ucDoctor.CreateDoctor
	update       *ucDoctor.UpdateDoctor
	delete       *ucDoctor.DeleteDoctor
	availability *ucDoctor.GetAvailability
	photo        *ucDoctor.UploadPhoto
}

func NewDoctorHandler(
	list *ucDoctor.ListDoctors,
	get *ucDoctor.GetDoctor,
	create *ucDoctor.CreateDoctor,
	update *ucDoctor.UpdateDoctor,
	del *ucDoctor.DeleteDoctor,
	availability *ucDoctor.GetAvailability,
	photo *ucDoctor.UploadPhoto,
) *DoctorHandler {
	return &DoctorHandler{
		list:         list,
		get:          get,
		create:       create,
		update:       update,
		delete:       del,
		availability: availability,
		photo:        photo,
	}
}

// --------- Requests ---------

type ScheduleEntryRequest struct {
	Day       string `json:"day" binding:"required,weekday"`
	StartTime string `json:"startTime" binding:"required,hhmm"`
	EndTime   string `json:"endTime" binding:"required,hhmm"`
}

type ContactInfoRequest struct {
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type DoctorRequest struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name" binding:"required"`
	Specialty   string                 `json:"specialty" binding:"required"`
	Schedule    []ScheduleEntryRequest `json:"schedule" binding:"dive"`
	ContactInfo ContactInfoRequest     `json:"contactInfo" binding:"required"`
}

func (r DoctorRequest) input() ucDoctor.DoctorInput {
	schedule := make([]models.Availability, 0, len(r.Schedule))
	for _, e := range r.Schedule {
		schedule = append(schedule, models.Availability{
			Day:       e.Day,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		})
	}
	return ucDoctor.DoctorInput{
		Name:      r.Name,
		Specialty: r.Specialty,
		Schedule:  schedule,
		Phone:     r.ContactInfo.Phone,
		Email:     r.ContactInfo.Email,
	}
}

// --------- Reads ---------

func (h *DoctorHandler) List(c *gin.Context) {
	docs, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, docs)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	doc, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, doc)
}

// Availability answers GET /api/doctors/:id/availability?date=YYYY-MM-DD.
func (h *DoctorHandler) Availability(c *gin.Context) {
	out, err := h.availability.Execute(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

// --------- Writes (admin) ---------

func (h *DoctorHandler) Create(c *gin.Context) {
	var req DoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, err := h.create.Execute(c.Request.Context(), c.GetString(middleware.ContextUserID), req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, doc)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	var req DoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, err := h.update.Execute(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		pathOrBody(c, req.ID),
		req.input(),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, doc)
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted successfully"})
}

// UploadPhoto takes a multipart "photo" field.
func (h *DoctorHandler) UploadPhoto(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes)

	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "A photo file is required (max 5MB).")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Could not read the uploaded photo.")
		return
	}
	defer f.Close()

	doc, err := h.photo.Execute(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, doc)
}
