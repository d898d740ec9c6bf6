package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/service"
)

type CarHandler struct {
	carSvc service.CarService
}

func NewCarHandler(carSvc service.CarService) *CarHandler {
	return &CarHandler{carSvc: carSvc}
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.CarFilter{
		Status: q.Get("status"),
		Name:   q.Get("name"),
	}
	if v := q.Get("min_price"); v != "" {
		filter.MinPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := q.Get("max_price"); v != "" {
		filter.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}

	cars, err := h.carSvc.GetAllCars(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if cars == nil {
		cars = []domain.Car{}
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid car id")
		return
	}
	car, err := h.carSvc.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

type carRequest struct {
	OwnerID      int32   `json:"owner_id"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	LicensePlate string  `json:"license_plate"`
	PricePerDay  float64 `json:"price_per_day"`
	Status       string  `json:"status"`
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Brand == "" || req.Model == "" || req.LicensePlate == "" {
		writeBadRequest(w, "brand, model and license_plate are required")
		return
	}

	ownerID := req.OwnerID
	if claims := ClaimsFromContext(r.Context()); claims != nil && ownerID == 0 {
		ownerID = claims.UserID
	}

	car := &domain.Car{
		OwnerID:      ownerID,
		Brand:        req.Brand,
		Model:        req.Model,
		LicensePlate: req.LicensePlate,
		PricePerDay:  req.PricePerDay,
		Status:       domain.CarStatus(req.Status),
		Approved:     true,
	}
	if err := h.carSvc.CreateCar(r.Context(), car); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid car id")
		return
	}

	var req carRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	car, err := h.carSvc.UpdateCar(r.Context(), id, &domain.Car{
		Brand:        req.Brand,
		Model:        req.Model,
		LicensePlate: req.LicensePlate,
		PricePerDay:  req.PricePerDay,
		Status:       domain.CarStatus(req.Status),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid car id")
		return
	}
	if err := h.carSvc.DeleteCar(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "car deleted successfully"})
}
