package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hygieia-health/hygieia-cli/internal/models"
)

func (c *RESTClient) BookAppointment(ctx context.Context, req models.BookAppointmentRequest) (*models.Appointment, error) {
	var appt models.Appointment
	if _, err := c.do(ctx, http.MethodPost, "/appointments", nil, req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// MyAppointments lists the caller's appointments, optionally narrowed to a
// status.
func (c *RESTClient) MyAppointments(ctx context.Context, status string) ([]models.Appointment, error) {
	var q url.Values
	if status != "" {
		q = url.Values{}
		q.Set("status", status)
	}
	var appts []models.Appointment
	if _, err := c.do(ctx, http.MethodGet, "/appointments/my", q, nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (c *RESTClient) Appointment(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if _, err := c.do(ctx, http.MethodGet, "/appointments/"+id, nil, nil, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// UpcomingAppointments lists the caller's next scheduled consultations.
func (c *RESTClient) UpcomingAppointments(ctx context.Context) ([]models.Appointment, error) {
	var appts []models.Appointment
	if _, err := c.do(ctx, http.MethodGet, "/appointments/upcoming", nil, nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (c *RESTClient) CancelAppointment(ctx context.Context, id, reason string) (*models.Appointment, error) {
	body := map[string]string{"reason": reason}
	var appt models.Appointment
	if _, err := c.do(ctx, http.MethodPatch, "/appointments/"+id+"/cancel", nil, body, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (c *RESTClient) RescheduleAppointment(ctx context.Context, id string, dateTime string) (*models.Appointment, error) {
	body := map[string]string{"dateTime": dateTime}
	var appt models.Appointment
	if _, err := c.do(ctx, http.MethodPatch, "/appointments/"+id+"/reschedule", nil, body, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// PlaceOrder checks out the cart's items.
func (c *RESTClient) PlaceOrder(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error) {
	var order models.Order
	if _, err := c.do(ctx, http.MethodPost, "/orders", nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
