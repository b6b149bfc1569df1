package apitest

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trustlayerlabs/academy/internal/client/models"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[creds.Email]
	if !ok || !a.checkPassword(creds.Password) {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResponse{Token: s.issueToken(a.user), User: &a.user})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.Registration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[req.Email]; exists {
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	}
	u := models.User{
		ID:      s.newID(),
		Email:   req.Email,
		Role:    models.RoleStudent,
		Name:    req.Name,
		College: req.College,
		Year:    req.Year,
		Phone:   req.Phone,
		City:    req.City,
	}
	s.accounts[u.Email] = newAccount(u, req.Password)

	if s.bareRegister {
		writeJSON(w, http.StatusCreated, map[string]any{})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "User registered", "user": u})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var upd models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.accounts[callerEmail(r)]
	a.user = upd.Apply(a.user)
	if s.partialProfile {
		writeJSON(w, http.StatusOK, struct {
			ID    models.ID `json:"id"`
			Email string    `json:"email"`
			models.ProfileUpdate
		}{a.user.ID, a.user.Email, upd})
		return
	}
	writeJSON(w, http.StatusOK, a.user)
}

func (s *Server) listCourses(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Courses())
}

func (s *Server) listEnrollments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := append([]models.EnrolledCourse{}, s.enrollments[callerEmail(r)]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount models.Amount `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount <= 0 {
		writeMessage(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := models.Order{
		ID:       "order_" + uuid.NewString()[:14],
		Amount:   int64(math.Round(float64(req.Amount) * 100)),
		Currency: "INR",
	}
	s.orders[order.ID] = order

	if s.omitOrderID {
		writeJSON(w, http.StatusOK, map[string]any{"amount": order.Amount, "currency": order.Currency})
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) verifyPayment(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rejectPayments {
		writeJSON(w, http.StatusOK, models.VerifyResponse{Success: false, Message: "Payment not captured"})
		return
	}
	if _, known := s.orders[req.OrderID]; !known || req.Signature != Sign(req.OrderID, req.PaymentID) {
		writeJSON(w, http.StatusBadRequest, models.VerifyResponse{Success: false, Message: "Invalid signature"})
		return
	}

	var course *models.Course
	for i := range s.courses {
		if s.courses[i].ID == req.CourseID {
			course = &s.courses[i]
		}
	}
	if course == nil {
		writeMessage(w, http.StatusNotFound, "Course not found")
		return
	}

	email := callerEmail(r)
	s.enrollments[email] = append(s.enrollments[email], models.EnrolledCourse{
		Course:     *course,
		Enrollment: &models.EnrollmentInfo{},
	})
	delete(s.orders, req.OrderID)
	writeJSON(w, http.StatusOK, models.VerifyResponse{Success: true, Message: "Payment verified"})
}

func (s *Server) requestService(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tickets = append(s.tickets, models.ServiceTicket{
		ID:             s.newID(),
		Service:        req.Service,
		Description:    req.Description,
		RequesterEmail: req.RequesterEmail,
		Status:         models.ServicePending,
	})
	writeMessage(w, http.StatusCreated, "Request submitted")
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	users := make([]models.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		users = append(users, a.user)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) createCourse(w http.ResponseWriter, r *http.Request) {
	var nc models.NewCourse
	if err := json.NewDecoder(r.Body).Decode(&nc); err != nil || nc.Title == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid course")
		return
	}
	c := s.AddCourse(models.Course{
		Title:      nc.Title,
		Price:      models.Amount(nc.Price),
		DriveLink:  nc.DriveLink,
		ExpiryDays: models.Count(nc.ExpiryDays),
	})
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) deleteCourse(w http.ResponseWriter, r *http.Request) {
	id := models.ID(chi.URLParam(r, "id"))

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.courses {
		if c.ID == id {
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			writeMessage(w, http.StatusOK, "Course deleted")
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Course not found")
}

func (s *Server) listTickets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Tickets())
}

func (s *Server) updateTicket(w http.ResponseWriter, r *http.Request) {
	id := models.ID(chi.URLParam(r, "id"))

	var upd models.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil || !upd.Status.Valid() {
		writeMessage(w, http.StatusBadRequest, "Invalid status")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tickets {
		if s.tickets[i].ID == id {
			s.tickets[i].Status = upd.Status
			writeJSON(w, http.StatusOK, s.tickets[i])
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Service request not found")
}
