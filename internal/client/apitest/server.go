// Package apitest runs an in-process academy backend for tests. It keeps
// users, courses, enrollments, orders and service requests in memory and
// records every call it receives.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/trustlayerlabs/academy/internal/client/models"
	"github.com/trustlayerlabs/academy/internal/common"
)

const (
	// PaymentSecret signs payment results accepted by the verify endpoint.
	PaymentSecret = "apitest-payment-secret"
	jwtSecret     = "apitest-jwt-secret"
)

// Call is one request received by the server.
type Call struct {
	Method    string
	Path      string
	Token     string
	RequestID string
	Body      []byte
}

// Failure overrides the answer of a route. Body is written verbatim.
type Failure struct {
	Status int
	Body   string
}

type account struct {
	user models.User
	hash []byte
}

func newAccount(u models.User, password string) *account {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return &account{user: u, hash: hash}
}

func (a *account) checkPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil
}

type Server struct {
	*httptest.Server

	mu          sync.Mutex
	accounts    map[string]*account
	tokens      map[string]string
	courses     []models.Course
	enrollments map[string][]models.EnrolledCourse
	orders      map[string]models.Order
	tickets     []models.ServiceTicket
	failures    map[string]Failure
	calls       []Call
	nextID      int

	rejectPayments bool
	omitOrderID    bool
	bareRegister   bool
	partialProfile bool
}

// New starts a server that is closed when t finishes.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		accounts:    make(map[string]*account),
		tokens:      make(map[string]string),
		enrollments: make(map[string][]models.EnrolledCourse),
		orders:      make(map[string]models.Order),
		failures:    make(map[string]Failure),
		nextID:      1,
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Use(s.inject)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.login)
		r.Post("/auth/register", s.register)
		r.Get("/courses", s.listCourses)
		r.Post("/services", s.requestService)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Put("/user/profile", s.updateProfile)
			r.Get("/enrollments", s.listEnrollments)
			r.Post("/payment/create-order", s.createOrder)
			r.Post("/payment/verify", s.verifyPayment)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAuth, s.requireAdmin)
			r.Get("/users", s.listUsers)
			r.Post("/courses", s.createCourse)
			r.Delete("/courses/{id}", s.deleteCourse)
			r.Get("/services", s.listTickets)
			r.Put("/services/{id}", s.updateTicket)
		})
	})
	return r
}

// AddUser creates an account and returns a token already valid for it.
func (s *Server) AddUser(u models.User, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = s.newID()
	}
	if u.Role == "" {
		u.Role = models.RoleStudent
	}
	s.accounts[u.Email] = newAccount(u, password)
	return s.issueToken(u)
}

// AddCourse stores c, assigning an id when it has none.
func (s *Server) AddCourse(c models.Course) models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = s.newID()
	}
	s.courses = append(s.courses, c)
	return c
}

// AddTicket stores a service request as if a visitor had submitted it.
func (s *Server) AddTicket(t models.ServiceTicket) models.ServiceTicket {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = s.newID()
	}
	if t.Status == "" {
		t.Status = models.ServicePending
	}
	s.tickets = append(s.tickets, t)
	return t
}

// Fail makes route (for example "POST /api/payment/verify") answer with f.
func (s *Server) Fail(route string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = f
}

// RejectPayments makes verify answer {"success": false} for every payment.
func (s *Server) RejectPayments(reject bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectPayments = reject
}

// OmitOrderID makes create-order answer without an order id.
func (s *Server) OmitOrderID(omit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.omitOrderID = omit
}

// BareRegister makes register answer {} instead of the user record.
func (s *Server) BareRegister(bare bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bareRegister = bare
}

// PartialProfileEcho makes the profile endpoint echo only id, email and the
// fields that were sent.
func (s *Server) PartialProfileEcho(partial bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partialProfile = partial
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallsTo returns the calls whose "METHOD path" equals route.
func (s *Server) CallsTo(route string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Method+" "+c.Path == route {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) User(email string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		return models.User{}, false
	}
	return a.user, true
}

func (s *Server) Courses() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Course(nil), s.courses...)
}

func (s *Server) Tickets() []models.ServiceTicket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ServiceTicket(nil), s.tickets...)
}

// Enrolled returns the ids of the courses a user is enrolled in.
func (s *Server) Enrolled(email string) []models.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []models.ID
	for _, e := range s.enrollments[email] {
		ids = append(ids, e.ID)
	}
	return ids
}

// Sign computes the signature the verify endpoint accepts for a payment.
func Sign(orderID, paymentID string) string {
	return models.SignPayment(PaymentSecret, orderID, paymentID)
}

// newID must be called with mu held.
func (s *Server) newID() models.ID {
	id := models.ID(strconv.Itoa(s.nextID))
	s.nextID++
	return id
}

// issueToken must be called with mu held.
func (s *Server) issueToken(u models.User) string {
	claims := jwt.MapClaims{
		"sub":  u.ID.String(),
		"role": string(u.Role),
		"jti":  uuid.NewString(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	if err != nil {
		panic(err)
	}
	s.tokens[token] = u.Email
	return token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func bearer(r *http.Request) string {
	h := r.Header.Get(common.AuthorizationHeaderName)
	if !strings.HasPrefix(h, common.BearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(h, common.BearerPrefix)
}
