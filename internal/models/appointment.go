package models

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentInProgress AppointmentStatus = "in-progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
)

type AppointmentType string

const (
	AppointmentVideo    AppointmentType = "video"
	AppointmentAudio    AppointmentType = "audio"
	AppointmentChat     AppointmentType = "chat"
	AppointmentInPerson AppointmentType = "in-person"
)

type Appointment struct {
	ID           string            `json:"_id"`
	PatientID    string            `json:"patientId"`
	DoctorID     string            `json:"doctorId"`
	Doctor       *Doctor           `json:"doctor,omitempty"`
	DateTime     time.Time         `json:"dateTime"`
	EndTime      *time.Time        `json:"endTime,omitempty"`
	Status       AppointmentStatus `json:"status"`
	Type         AppointmentType   `json:"type"`
	Reason       string            `json:"reason"`
	Symptoms     []string          `json:"symptoms,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	Prescription string            `json:"prescription,omitempty"`
	MeetingLink  string            `json:"meetingLink,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// BookAppointmentRequest is the payload for booking a consultation.
type BookAppointmentRequest struct {
	DoctorID string          `json:"doctorId"`
	Date     string          `json:"date"`
	Time     string          `json:"time"`
	Type     AppointmentType `json:"type"`
	Reason   string          `json:"reason"`
	Symptoms []string        `json:"symptoms,omitempty"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID              string      `json:"_id"`
	UserID          string      `json:"userId"`
	OrderNumber     string      `json:"orderNumber"`
	Items           []CartItem  `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	Discount        float64     `json:"discount"`
	DeliveryFee     float64     `json:"deliveryFee"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          OrderStatus `json:"status"`
	ShippingAddress Address     `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// PlaceOrderRequest is the payload for checking out the cart.
type PlaceOrderRequest struct {
	Items           []CartItem `json:"items"`
	ShippingAddress Address    `json:"shippingAddress"`
	PaymentMethod   string     `json:"paymentMethod"`
}
