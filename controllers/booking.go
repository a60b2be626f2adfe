package controllers

import (
	"net/http"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/service"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/gin-gonic/gin"
)

// BookingController public booking wizard. Every call answers with the full
// session state so the client can render the current step.
type BookingController struct {
	booking *service.BookingService
	catalog *service.CatalogService
}

func NewBookingController(booking *service.BookingService, catalog *service.CatalogService) *BookingController {
	return &BookingController{booking: booking, catalog: catalog}
}

// GetOptions GET /api/booking/options
func (ctl *BookingController) GetOptions(c *gin.Context) {
	opts, err := ctl.catalog.Options(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, opts, "")
}

// GetTests GET /api/booking/tests
func (ctl *BookingController) GetTests(c *gin.Context) {
	tests, err := ctl.catalog.ActiveTests(c.Request.Context(), c.Query("search"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.ListResponse(c, "tests", tests, len(tests))
}

// GetPackages GET /api/booking/packages
func (ctl *BookingController) GetPackages(c *gin.Context) {
	packages, err := ctl.catalog.ActivePackages(c.Request.Context(), c.Query("search"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.ListResponse(c, "packages", packages, len(packages))
}

// StartSession POST /api/booking/sessions
func (ctl *BookingController) StartSession(c *gin.Context) {
	state, err := ctl.booking.Start(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, state, "", http.StatusCreated)
}

// GetSession GET /api/booking/sessions/:id
func (ctl *BookingController) GetSession(c *gin.Context) {
	state, err := ctl.booking.State(c.Request.Context(), c.Param("id"))
	respond(c, state, err)
}

// Next POST /api/booking/sessions/:id/next
func (ctl *BookingController) Next(c *gin.Context) {
	var input models.StepInput
	if !bindJSON(c, &input) {
		return
	}
	state, err := ctl.booking.Advance(c.Request.Context(), c.Param("id"), input)
	respond(c, state, err)
}

// Back POST /api/booking/sessions/:id/back
func (ctl *BookingController) Back(c *gin.Context) {
	state, err := ctl.booking.Retreat(c.Request.Context(), c.Param("id"))
	respond(c, state, err)
}

// EnterDigit PUT /api/booking/sessions/:id/otp/digit
func (ctl *BookingController) EnterDigit(c *gin.Context) {
	var req models.OTPDigitRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := ctl.booking.EnterDigit(c.Request.Context(), c.Param("id"), req.Index, req.Digit)
	respond(c, state, err)
}

// Backspace POST /api/booking/sessions/:id/otp/backspace
func (ctl *BookingController) Backspace(c *gin.Context) {
	var req models.OTPDigitRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := ctl.booking.Backspace(c.Request.Context(), c.Param("id"), req.Index)
	respond(c, state, err)
}

// Paste POST /api/booking/sessions/:id/otp/paste
func (ctl *BookingController) Paste(c *gin.Context) {
	var req models.OTPPasteRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := ctl.booking.Paste(c.Request.Context(), c.Param("id"), req.Value)
	respond(c, state, err)
}

// ResendOTP POST /api/booking/sessions/:id/otp/resend
func (ctl *BookingController) ResendOTP(c *gin.Context) {
	state, err := ctl.booking.ResendOTP(c.Request.Context(), c.Param("id"))
	respond(c, state, err)
}

// Verify POST /api/booking/sessions/:id/verify
func (ctl *BookingController) Verify(c *gin.Context) {
	var req models.VerifyOTPRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	state, err := ctl.booking.VerifyOTP(c.Request.Context(), c.Param("id"), req.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, state, "booking confirmed")
}

// Discard DELETE /api/booking/sessions/:id
func (ctl *BookingController) Discard(c *gin.Context) {
	if err := ctl.booking.Discard(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "booking discarded")
}

func respond(c *gin.Context, data interface{}, err error) {
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, data, "")
}
