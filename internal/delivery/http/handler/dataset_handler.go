package handler

import (
	"net/http"

	"healthsystem/internal/usecase"
	"healthsystem/pkg/response"

	"github.com/gorilla/mux"
)

type DatasetHandler struct {
	Base
	datasetUsecase usecase.DatasetUsecase
}

func NewDatasetHandler(base Base, datasetUsecase usecase.DatasetUsecase) *DatasetHandler {
	return &DatasetHandler{
		Base:           base,
		datasetUsecase: datasetUsecase,
	}
}

// Filter handles GET /api/filter?table=&column=&value=
func (h *DatasetHandler) Filter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.datasetUsecase.Filter(r.Context(), q.Get("table"), q.Get("column"), q.Get("value"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Filtered data retrieved successfully", rows)
}

func (h *DatasetHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.datasetUsecase.List(r.Context(), mux.Vars(r)["dataset"])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Data retrieved successfully", rows)
}
