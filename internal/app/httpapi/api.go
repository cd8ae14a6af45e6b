// Paket httpapi mengekspos handler REST dan menerjemahkan request HTTP ke
// service penilaian.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/antonprafanto/MRLKS/internal/app/scoring"
	"github.com/antonprafanto/MRLKS/internal/domain"
	"github.com/antonprafanto/MRLKS/internal/platform/metrics"
)

// API membungkus handler HTTP yang terikat ke service penilaian dan logger.
type API struct {
	service  domain.ScoringService
	logger   *slog.Logger
	validate *validator.Validate
}

func New(service domain.ScoringService, logger *slog.Logger) *API {
	return &API{
		service:  service,
		logger:   logger,
		validate: validator.New(),
	}
}

func (a *API) Register(mux *http.ServeMux) {
	// Rute terpusat supaya mudah diuji dan dipakai ulang di server berbeda.
	mux.HandleFunc("/healthz", a.handleHealthz)
	mux.HandleFunc("/peserta", a.handlePeserta)
	mux.HandleFunc("/peserta/cari", a.cariPeserta)
	mux.HandleFunc("/peserta/", a.handlePesertaDetail)
	mux.HandleFunc("/items", a.listarItems)
	mux.HandleFunc("/skor/judgment", a.simpanJudgment)
	mux.HandleFunc("/skor/measurement", a.simpanMeasurement)
	mux.HandleFunc("/skor/peserta/", a.skorPeserta)
	mux.HandleFunc("/skor/hari/", a.skorPerHari)
	mux.HandleFunc("/klasemen", a.klasemen)
	mux.HandleFunc("/klasemen/", a.rincianPeserta)
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type pesertaRequest struct {
	ID      string `json:"id" validate:"required,max=50"`
	Nama    string `json:"nama" validate:"required,max=100"`
	Sekolah string `json:"sekolah"`
}

func (a *API) handlePeserta(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listarPeserta(w, r)
	case http.MethodPost:
		a.daftarPeserta(w, r)
	default:
		http.Error(w, "metode tidak didukung", http.StatusMethodNotAllowed)
	}
}

func (a *API) listarPeserta(w http.ResponseWriter, r *http.Request) {
	// ?skor=1 menyertakan total skor tiap peserta untuk layar rekap panitia.
	if r.URL.Query().Get("skor") == "1" {
		hasil, err := a.service.PesertaDenganSkor(r.Context())
		if err != nil {
			a.logger.Error("gagal memuat daftar peserta dengan skor", "err", err)
			responderErro(w, err)
			return
		}

		responderJSON(w, http.StatusOK, hasil)
		return
	}

	hasil, err := a.service.ListPeserta(r.Context())
	if err != nil {
		a.logger.Error("gagal memuat daftar peserta", "err", err)
		responderErro(w, err)
		return
	}

	responderJSON(w, http.StatusOK, hasil)
}

func (a *API) daftarPeserta(w http.ResponseWriter, r *http.Request) {
	var req pesertaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.logger.Warn("payload pendaftaran peserta invalid", "err", err)
		http.Error(w, "payload invalid", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, "payload invalid: "+err.Error(), http.StatusBadRequest)
		return
	}

	peserta, err := a.service.DaftarPeserta(r.Context(), domain.Peserta{
		ID:      domain.PesertaID(req.ID),
		Nama:    req.Nama,
		Sekolah: req.Sekolah,
	})
	if err != nil {
		a.logger.Warn("gagal mendaftarkan peserta", "err", err, "peserta", req.ID)
		responderErro(w, err)
		return
	}

	responderJSON(w, http.StatusCreated, peserta)
	a.logger.Info("peserta terdaftar", "peserta", peserta.ID)
}

func (a *API) cariPeserta(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "metode tidak didukung", http.StatusMethodNotAllowed)
		return
	}

	hasil, err := a.service.CariPeserta(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		responderErro(w, err)
		return
	}

	responderJSON(w, http.StatusOK, hasil)
}

func (a *API) handlePesertaDetail(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/peserta/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		peserta, err := a.service.GetPeserta(r.Context(), domain.PesertaID(id))
		if err != nil {
			responderErro(w, err)
			return
		}
		responderJSON(w, http.StatusOK, peserta)
	case http.MethodPut:
		a.ubahPeserta(w, r, domain.PesertaID(id))
	case http.MethodDelete:
		if err := a.service.HapusPeserta(r.Context(), domain.PesertaID(id)); err != nil {
			a.logger.Warn("gagal menghapus peserta", "err", err, "peserta", id)
			responderErro(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "metode tidak didukung", http.StatusMethodNotAllowed)
	}
}

func (a *API) ubahPeserta(w http.ResponseWriter, r *http.Request, id domain.PesertaID) {
	var req pesertaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload invalid", http.StatusBadRequest)
		return
	}
	req.ID = string(id)
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, "payload invalid: "+err.Error(), http.StatusBadRequest)
		return
	}

	peserta, err := a.service.UbahPeserta(r.Context(), domain.Peserta{
		ID:      id,
		Nama:    req.Nama,
		Sekolah: req.Sekolah,
	})
	if err != nil {
		responderErro(w, err)
		return
	}

	responderJSON(w, http.StatusOK, peserta)
}

func (a *API) listarItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "metode tidak didukung", http.StatusMethodNotAllowed)
		return
	}

	items, err := a.service.MasterItems(r.Context(), domain.Hari(r.URL.Query().Get("hari")))
	if err != nil {
		a.logger.Error("gagal memuat katalog item", "err", err)
		responderErro(w, err)
		return
	}

	responderJSON(w, http.StatusOK, items)
}

type skorJudgmentRequest struct {
	PesertaID string `json:"peserta_id" validate:"required,max=50"`
	ItemCode  string `json:"item_code" validate:"required,max=10"`
	Hari      string `json:"hari" validate:"required,oneof=C1 C2 C3"`
	Juri1     int    `json:"juri_1" validate:"min=0,max=3"`
	Juri2     int    `json:"juri_2" validate:"min=0,max=3"`
	Juri3     int    `json:"juri_3" validate:"min=0,max=3"`
	Bobot     int    `json:"bobot" validate:"gt=0"`
}

func (a *API) simpanJudgment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "metode tidak didukung", http.StatusMethodNotAllowed)
		return
	}

	var req skorJudgmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.ObserveSkorRequest("judgment", "invalid_payload")
		a.logger.Warn("payload skor judgment invalid", "err", err)
		http.Error(w, "payload invalid", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		metrics.ObserveSkorRequest("judgment", "invalid_payload")
		http.Error(w, "payload invalid: "+err.Error(), http.StatusBadRequest)
		return
	}

	hasil, err := a.service.SimpanSkorJudgment(r.Context(), domain.SkorJudgmentInput{
		PesertaID: domain.PesertaID(req.PesertaID),
		ItemCode:  domain.ItemCode(req.ItemCode),
		Hari:      domain.Hari(req.Hari),
		Juri1:     req.Juri1,
		Juri2:     req.Juri2,
		Juri3:     req.Juri3,
		Bobot:     req.Bobot,
	})
	if err != nil {
		status := statusFromError(err)
		metrics.ObserveSkorRequest("judgment", status)
		a.logger.Warn("gagal menyimpan skor judgment", "err", err, "peserta", req.PesertaID, "item", req.ItemCode, "status", status)
		responderErro(w, err)
		return
	}

	metrics.ObserveSkorRequest("judgment", "accepted")
	responderJSON(w, http.StatusOK, hasil)
	a.logger.Info("skor judgment tersimpan", "peserta", req.PesertaID, "item", req.ItemCode, "skor_final", hasil.SkorFinal)
}

type skorMeasurementRequest struct {
	PesertaID string `json:"peserta_id" validate:"required,max=50"`
	ItemCode  string `json:"item_code" validate:"required,max=10"`
	Hari      string `json:"hari" validate:"required,oneof=C1 C2 C3"`
	NilaiUkur *int   `json:"nilai_ukur" validate:"required,oneof=0 1"`
	Bobot     int    `json:"bobot" validate:"gt=0"`
}

func (a *API) simpanMeasurement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "metode tidak didukung", http.StatusMethodNotAllowed)
		return
	}

	var req skorMeasurementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.ObserveSkorRequest("measurement", "invalid_payload")
		a.logger.Warn("payload skor measurement invalid", "err", err)
		http.Error(w, "payload invalid", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		metrics.ObserveSkorRequest("measurement", "invalid_payload")
		http.Error(w, "payload invalid: "+err.Error(), http.StatusBadRequest)
		return
	}

	hasil, err := a.service.SimpanSkorMeasurement(r.Context(), domain.SkorMeasurementInput{
		PesertaID: domain.PesertaID(req.PesertaID),
		ItemCode:  domain.ItemCode(req.ItemCode),
		Hari:      domain.Hari(req.Hari),
		NilaiUkur: *req.NilaiUkur,
		Bobot:     req.Bobot,
	})
	if err != nil {
		status := statusFromError(err)
		metrics.ObserveSkorRequest("measurement", status)
		a.logger.Warn("gagal menyimpan skor measurement", "err", err, "peserta", req.PesertaID, "item", req.ItemCode, "status", status)
		responderErro(w, err)
		return
	}

	metrics.ObserveSkorRequest("measurement", "accepted")
	responderJSON(w, http.StatusOK, hasil)
	a.logger.Info("skor measurement tersimpan", "peserta", req.PesertaID, "item", req.ItemCode, "skor_final", hasil.SkorFinal)
}

func (a *API) skorPeserta(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "metode tidak didukung", http.StatusMethodNotAllowed)
		return
	}

	id := pathID(r.URL.Path, "/skor/peserta/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	hasil, err := a.service.SkorPeserta(r.Context(), domain.PesertaID(id))
	if err != nil {
		responderErro(w, err)
		return
	}

	responderJSON(w, http.StatusOK, hasil)
}

func (a *API) skorPerHari(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "metode tidak didukung", http.StatusMethodNotAllowed)
		return
	}

	hari := pathID(r.URL.Path, "/skor/hari/")
	if hari == "" {
		http.NotFound(w, r)
		return
	}

	entries, err := a.service.SkorPerHari(r.Context(), domain.Hari(hari))
	if err != nil {
		responderErro(w, err)
		return
	}

	responderJSON(w, http.StatusOK, entries)
}

func (a *API) klasemen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "metode tidak didukung", http.StatusMethodNotAllowed)
		return
	}

	entries, err := a.service.Klasemen(r.Context())
	if err != nil {
		a.logger.Error("gagal menyusun klasemen", "err", err)
		responderErro(w, err)
		return
	}

	responderJSON(w, http.StatusOK, entries)
}

func (a *API) rincianPeserta(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "metode tidak didukung", http.StatusMethodNotAllowed)
		return
	}

	id := pathID(r.URL.Path, "/klasemen/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	rincian, err := a.service.Rincian(r.Context(), domain.PesertaID(id))
	if err != nil {
		a.logger.Error("gagal memuat rincian peserta", "err", err, "peserta", id)
		responderErro(w, err)
		return
	}

	responderJSON(w, http.StatusOK, rincian)
}

// pathID mengambil segmen tunggal setelah prefix; path bertingkat ditolak.
func pathID(path, prefix string) string {
	sisa := strings.TrimPrefix(path, prefix)
	if sisa == "" || strings.Contains(sisa, "/") {
		return ""
	}
	return sisa
}

func responderJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func responderErro(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, scoring.ErrInputInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, scoring.ErrStrukturInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, scoring.ErrPesertaInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, scoring.ErrPesertaTidakDitemukan):
		status = http.StatusNotFound
	case errors.Is(err, scoring.ErrItemTidakDitemukan):
		status = http.StatusNotFound
	case errors.Is(err, scoring.ErrPesertaSudahAda):
		status = http.StatusConflict
	case errors.Is(err, scoring.ErrPesertaMemilikiSkor):
		status = http.StatusConflict
	}

	responderJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFromError(err error) string {
	switch {
	case errors.Is(err, scoring.ErrInputInvalid):
		return "invalid"
	case errors.Is(err, scoring.ErrStrukturInvalid):
		return "invalid_structure"
	case errors.Is(err, scoring.ErrPesertaTidakDitemukan):
		return "not_found"
	case errors.Is(err, scoring.ErrItemTidakDitemukan):
		return "not_found"
	default:
		return "error"
	}
}
