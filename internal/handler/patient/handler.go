package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bansalsd420/smart-ambulance-api/internal/handler"
	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

// Handler serves patient records from the repository. Patients are
// normally created inline through onboardings; this surface covers
// lookup and pre-registration.
type Handler struct {
	repo repository.PatientRepository
}

func NewHandler(repo repository.PatientRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.Create)
		patients.GET("", h.List)
		patients.GET("/:id", h.Get)
	}
	// Separate route: a static segment under /patients would collide
	// with the :id wildcard.
	r.GET("/patient-lookup", h.GetByCode)
}

type createRequest struct {
	Code           *string       `json:"patient_code"`
	Name           *string       `json:"name"`
	Age            *int          `json:"age"`
	Gender         *string       `json:"gender"`
	Contact        model.RawJSON `json:"contact"`
	MedicalHistory model.RawJSON `json:"medical_history"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation(err.Error()))
		return
	}
	patient := &model.Patient{
		Name:           req.Name,
		Age:            req.Age,
		Gender:         req.Gender,
		Contact:        req.Contact,
		MedicalHistory: req.MedicalHistory,
	}
	if req.Code != nil && *req.Code != "" {
		patient.Code = *req.Code
	} else {
		patient.Code = model.NewPatientCode()
	}
	if err := h.repo.Create(c.Request.Context(), patient); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, patient)
}

func (h *Handler) List(c *gin.Context) {
	patients, err := h.repo.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := handler.IDParam(c, "id")
	if err != nil {
		handler.Error(c, err)
		return
	}
	patient, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *Handler) GetByCode(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		handler.Error(c, apperrors.BadRequest("code query parameter is required"))
		return
	}
	patient, err := h.repo.GetByCode(c.Request.Context(), code)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}
