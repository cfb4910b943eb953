package handler

import (
	"net/http"

	"healthsystem/internal/delivery/dto"
	"healthsystem/internal/usecase"
	"healthsystem/pkg/response"
)

type BillingHandler struct {
	Base
	billingUsecase usecase.BillingUsecase
}

func NewBillingHandler(base Base, billingUsecase usecase.BillingUsecase) *BillingHandler {
	return &BillingHandler{
		Base:           base,
		billingUsecase: billingUsecase,
	}
}

func (h *BillingHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBillingRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.billingUsecase.CreateBill(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Bill created successfully", res)
}

func (h *BillingHandler) GetBills(w http.ResponseWriter, r *http.Request) {
	patientID, err := queryInt64(r, "patient_id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	bills, err := h.billingUsecase.GetBills(r.Context(), patientID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Bills retrieved successfully", bills)
}

func (h *BillingHandler) PayBill(w http.ResponseWriter, r *http.Request) {
	var req dto.PayBillRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.billingUsecase.PayBill(r.Context(), &req); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Bill payment processed successfully", nil)
}
