package models

// ServiceStatus tracks a consulting request through the admin workflow.
type ServiceStatus string

const (
	ServicePending   ServiceStatus = "pending"
	ServiceQuoted    ServiceStatus = "quoted"
	ServiceCompleted ServiceStatus = "completed"
)

func (s ServiceStatus) Valid() bool {
	switch s {
	case ServicePending, ServiceQuoted, ServiceCompleted:
		return true
	}
	return false
}

// ServiceRequest is the payload of POST /api/services.
type ServiceRequest struct {
	Service        string `json:"service" validate:"required"`
	Description    string `json:"description" validate:"required"`
	RequesterEmail string `json:"requesterEmail" validate:"required,email"`
}

// ServiceTicket is a stored service request as listed to admins.
type ServiceTicket struct {
	ID             ID            `json:"id"`
	Service        string        `json:"service"`
	Description    string        `json:"description"`
	RequesterEmail string        `json:"requesterEmail"`
	Status         ServiceStatus `json:"status"`
}

// StatusUpdate is the payload of PUT /api/admin/services/:id.
type StatusUpdate struct {
	Status ServiceStatus `json:"status"`
}

// Offering is one item of the consulting catalog shown on /services.
type Offering struct {
	Title       string
	Description string
	Category    string
}

// Offerings is the fixed consulting catalog.
var Offerings = []Offering{
	{Title: "VAPT (Vulnerability Assessment)", Description: "Identify and fix security loopholes before hackers exploit them.", Category: "Security"},
	{Title: "Full-Stack Web Development", Description: "Scalable, secure, high-performance web applications.", Category: "Development"},
	{Title: "SOC Setup & Monitoring", Description: "24/7 monitoring and incident response systems.", Category: "Security"},
	{Title: "E-Commerce & CMS Solutions", Description: "Robust stores and custom CMS platforms.", Category: "Development"},
	{Title: "Cloud Hardening", Description: "Secure AWS, Azure, and GCP infrastructure.", Category: "Security"},
	{Title: "Compliance Audits", Description: "ISO, SOC2, HIPAA, GDPR compliance support.", Category: "Security"},
}
