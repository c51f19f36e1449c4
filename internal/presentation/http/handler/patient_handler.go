package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/afyacare/hms-api/internal/application/service"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/request"
	"github.com/afyacare/hms-api/internal/presentation/http/dto/response"
	"github.com/afyacare/hms-api/pkg/pagination"
)

// PatientHandler handles patient-related HTTP requests
type PatientHandler struct {
	patientService *service.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// Register handles patient registration
func (h *PatientHandler) Register(c *gin.Context) {
	actor := GetActor(c)

	var req request.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		response.BadRequest(c, "Invalid date of birth: expected YYYY-MM-DD")
		return
	}

	patient, err := h.patientService.RegisterPatient(c.Request.Context(), actor, &service.RegisterPatientInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Gender:          req.Gender,
		DateOfBirth:     dob,
		Phone:           req.Phone,
		Address:         req.Address,
		NextOfKin:       req.NextOfKin,
		NextOfKinTel:    req.NextOfKinTel,
		BloodGroup:      req.BloodGroup,
		Allergies:       req.Allergies,
		InsuranceName:   req.InsuranceName,
		InsuranceNumber: req.InsuranceNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Patient registered successfully", patient)
}

// List handles listing patients (supports both page-based and cursor-based pagination)
func (h *PatientHandler) List(c *gin.Context) {
	search := c.Query("search")
	gender := c.Query("gender")

	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c, search, gender)
		return
	}

	params := &repository.PatientFilterParams{
		Pagination:       parsePagination(c),
		Search:           search,
		Gender:           gender,
		RegisteredAfter:  parseDateQuery(c, "registered_after"),
		RegisteredBefore: parseDateQuery(c, "registered_before"),
		SortBy:           c.Query("sort_by"),
		SortOrder:        c.Query("sort_order"),
	}

	result, err := h.patientService.ListPatients(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Patients retrieved successfully", result)
}

// listWithCursor handles listing patients with cursor-based pagination
func (h *PatientHandler) listWithCursor(c *gin.Context, search, gender string) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	params := &repository.PatientCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    c.Query("cursor"),
			Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
			Limit:     limit,
		},
		Search: search,
		Gender: gender,
	}

	result, err := h.patientService.ListPatientsWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Patients retrieved successfully", result)
}

// Get handles getting a single patient by ID
func (h *PatientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	patient, err := h.patientService.GetPatient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient retrieved successfully", patient)
}

// GetByMRN handles looking up a patient by medical record number
func (h *PatientHandler) GetByMRN(c *gin.Context) {
	mrn := c.Param("mrn")
	if mrn == "" {
		response.BadRequest(c, "Invalid medical record number")
		return
	}

	patient, err := h.patientService.GetPatientByMRN(c.Request.Context(), mrn)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient retrieved successfully", patient)
}

// Update handles updating patient demographics
func (h *PatientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	var req request.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	patient, err := h.patientService.UpdatePatient(c.Request.Context(), id, &service.UpdatePatientInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Gender:          req.Gender,
		Phone:           req.Phone,
		Address:         req.Address,
		NextOfKin:       req.NextOfKin,
		NextOfKinTel:    req.NextOfKinTel,
		BloodGroup:      req.BloodGroup,
		Allergies:       req.Allergies,
		InsuranceName:   req.InsuranceName,
		InsuranceNumber: req.InsuranceNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient updated successfully", patient)
}

// Delete handles deleting a patient record
func (h *PatientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	if err := h.patientService.DeletePatient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
