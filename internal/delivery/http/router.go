package http

import (
	"net/http"

	"healthsystem/internal/delivery/http/handler"
	"healthsystem/internal/delivery/http/middleware"
	"healthsystem/internal/domain/entity"
	"healthsystem/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handlers groups every endpoint handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Patient     *handler.PatientHandler
	Physician   *handler.PhysicianHandler
	Appointment *handler.AppointmentHandler
	Clinic      *handler.ClinicHandler
	Billing     *handler.BillingHandler
	Clinical    *handler.ClinicalHandler
	Dataset     *handler.DatasetHandler
	AuditLog    *handler.AuditLogHandler
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
	brokers        middleware.BrokerFactory
	log            *logrus.Logger
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	brokers middleware.BrokerFactory,
	log *logrus.Logger,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		handlers:       handlers,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
		brokers:        brokers,
		log:            log,
	}
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers

	// Order matters: the logger reads the identity LoadSession attaches, and
	// every handler below runs inside a connection scope.
	r.router.Use(middleware.Recovery(r.log))
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.authMiddleware.LoadSession)
	r.router.Use(middleware.RequestLogger(r.log))

	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public). They always run under the admin credentials, even
	// for a caller who already holds a session.
	auth := r.router.PathPrefix("/auth").Subrouter()
	auth.Use(middleware.ForceRole(entity.RoleAdmin))
	auth.Use(middleware.ConnectionScope(r.brokers))
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/register/patient", h.Auth.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/physician", h.Auth.RegisterPhysician).Methods(http.MethodPost)

	authProtected := r.router.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.RequireAuth)
	authProtected.Use(middleware.ConnectionScope(r.brokers))
	authProtected.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/current-user", h.Auth.GetCurrentUser).Methods(http.MethodGet)

	// Patient records may be created before the patient has an account.
	public := r.router.PathPrefix("/api").Subrouter()
	public.Use(middleware.ConnectionScope(r.brokers))
	public.HandleFunc("/patients", h.Patient.CreatePatient).Methods(http.MethodPost)
	public.HandleFunc("/patients/{id:[0-9]+}", h.Patient.GetPatient).Methods(http.MethodGet)

	api := r.router.PathPrefix("/api").Subrouter()
	api.Use(r.authMiddleware.RequireAuth)
	api.Use(middleware.ConnectionScope(r.brokers))

	api.HandleFunc("/patients", h.Patient.GetAllPatients).Methods(http.MethodGet)
	api.HandleFunc("/physicians", h.Physician.GetPhysicians).Methods(http.MethodGet)
	api.HandleFunc("/booked-timeslots", h.Appointment.GetBookedSlots).Methods(http.MethodGet)
	api.HandleFunc("/clinics", h.Clinic.GetAllClinics).Methods(http.MethodGet)
	api.HandleFunc("/worksat", h.Clinic.GetWorksAt).Methods(http.MethodGet)
	api.HandleFunc("/activity", h.AuditLog.GetMyActivity).Methods(http.MethodGet)

	api.HandleFunc("/healthreports", h.Clinical.GetHealthReports).Methods(http.MethodGet)
	api.HandleFunc("/prescription", h.Clinical.GetPrescriptions).Methods(http.MethodGet)
	api.HandleFunc("/history", h.Clinical.GetMedicalHistory).Methods(http.MethodGet)
	api.HandleFunc("/billing", h.Billing.GetBills).Methods(http.MethodGet)
	api.HandleFunc("/billing/pay", h.Billing.PayBill).Methods(http.MethodPost)
	api.HandleFunc("/appointments", h.Appointment.BookAppointment).Methods(http.MethodPost)

	// Patient routes
	patient := api.NewRoute().Subrouter()
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/appointments", h.Appointment.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/{id:[0-9]+}", h.Appointment.CancelAppointment).Methods(http.MethodDelete)

	// Staff routes
	staff := api.NewRoute().Subrouter()
	staff.Use(middleware.RequireStaff)
	staff.HandleFunc("/healthreports", h.Clinical.CreateHealthReport).Methods(http.MethodPost)
	staff.HandleFunc("/prescription", h.Clinical.CreatePrescription).Methods(http.MethodPost)
	staff.HandleFunc("/history", h.Clinical.CreateMedicalHistory).Methods(http.MethodPost)
	staff.HandleFunc("/history", h.Clinical.UpdateMedicalHistory).Methods(http.MethodPut)
	staff.HandleFunc("/billing", h.Billing.CreateBill).Methods(http.MethodPost)
	staff.HandleFunc("/clinics", h.Clinic.CreateClinic).Methods(http.MethodPost)
	staff.HandleFunc("/worksat", h.Clinic.CreateWorksAt).Methods(http.MethodPost)
	staff.HandleFunc("/filter", h.Dataset.Filter).Methods(http.MethodGet)

	// Physician data views
	data := api.PathPrefix("/data").Subrouter()
	data.Use(middleware.RequirePhysician)
	data.HandleFunc("/{dataset}", h.Dataset.List).Methods(http.MethodGet)

	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "")
	})

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Success(w, http.StatusOK, "ok", map[string]string{"status": "ok"})
}
