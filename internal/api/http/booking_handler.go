package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/service"
	"carrental-backoffice/internal/utils"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type createBookingRequest struct {
	UserID    int32  `json:"user_id"`
	CarID     int32  `json:"car_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.CarID == 0 {
		writeBadRequest(w, "car_id is required")
		return
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	// Customers book for themselves; staff may book on behalf of a renter.
	userID := req.UserID
	if claims := ClaimsFromContext(r.Context()); claims != nil {
		if userID == 0 || claims.Role == string(domain.UserRoleCustomer) {
			userID = claims.UserID
		}
	}

	booking, err := h.bookingSvc.CreateBooking(r.Context(), userID, req.CarID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid booking id")
		return
	}
	booking, err := h.bookingSvc.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.BookingFilter{
		Status: q.Get("status"),
	}
	if v := q.Get("user_id"); v != "" {
		id, _ := strconv.ParseInt(v, 10, 32)
		filter.UserID = int32(id)
	}
	if v := q.Get("car_id"); v != "" {
		id, _ := strconv.ParseInt(v, 10, 32)
		filter.CarID = int32(id)
	}
	if v := q.Get("start_date"); v != "" {
		t, err := utils.ParseDate(v)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		filter.StartDate = t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := utils.ParseDate(v)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		filter.EndDate = t
	}

	bookings, err := h.bookingSvc.GetAllBookings(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	var bookings []domain.Booking
	var err error
	if claims.Role == string(domain.UserRoleOwner) {
		bookings, err = h.bookingSvc.GetOwnerBookings(r.Context(), claims.UserID)
	} else {
		bookings, err = h.bookingSvc.GetUserBookings(r.Context(), claims.UserID)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) ListMyContracts(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	contracts, err := h.bookingSvc.GetUserContracts(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if contracts == nil {
		contracts = []domain.Contract{}
	}
	writeJSON(w, http.StatusOK, contracts)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateStatusResponse struct {
	Booking  *domain.Booking  `json:"booking"`
	Contract *domain.Contract `json:"contract"`
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid booking id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Status == "" {
		writeBadRequest(w, "status is required")
		return
	}

	booking, contract, err := h.bookingSvc.UpdateBookingStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updateStatusResponse{Booking: booking, Contract: contract})
}

type conflictResponse struct {
	HasConflict bool `json:"has_conflict"`
}

func (h *BookingHandler) CheckConflict(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	carID, err := strconv.ParseInt(q.Get("car_id"), 10, 32)
	if err != nil {
		writeBadRequest(w, "invalid car_id")
		return
	}
	start, err := utils.ParseDate(q.Get("start_date"))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	end, err := utils.ParseDate(q.Get("end_date"))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	conflict, err := h.bookingSvc.CheckBookingConflict(r.Context(), int32(carID), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conflictResponse{HasConflict: conflict})
}

func (h *BookingHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.bookingSvc.GetBookingSummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
