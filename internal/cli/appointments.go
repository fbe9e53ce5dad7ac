package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/hygieia-health/hygieia-cli/internal/models"
	"github.com/hygieia-health/hygieia-cli/internal/validate"
)

// Appointments lists the user's consultations, optionally filtered by
// status.
func (a *App) Appointments(ctx context.Context) error {
	status, err := getSimpleText(a.reader, "Status (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	appts, err := a.appointments.MyAppointments(ctx, status)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return err
	}
	if len(appts) == 0 {
		fmt.Println("No appointments.")
		return nil
	}
	for _, ap := range appts {
		doctor := ap.DoctorID
		if ap.Doctor != nil {
			doctor = ap.Doctor.Name
		}
		fmt.Printf("%s  %s  %-20s %-10s %s\n",
			ap.ID, ap.DateTime.Local().Format("2006-01-02 15:04"), doctor, ap.Type, ap.Status)
	}
	return nil
}

// Book walks through booking a consultation: doctor, date, slot, type and
// reason, validated locally before the request goes out.
func (a *App) Book(ctx context.Context) error {
	doctorID, err := getSimpleText(a.reader, "Enter doctor id", os.Stdout)
	if err != nil {
		return err
	}
	date, err := getSimpleText(a.reader, "Enter date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}
	slot, err := getSimpleText(a.reader, "Enter time slot (HH:MM)", os.Stdout)
	if err != nil {
		return err
	}
	apptType, err := getSimpleText(a.reader, "Type (video/audio/chat/in-person)", os.Stdout)
	if err != nil {
		return err
	}
	reason, err := getSimpleText(a.reader, "Reason for the visit", os.Stdout)
	if err != nil {
		return err
	}

	form := validate.BookingForm{DoctorID: doctorID, Date: date, Slot: slot, Type: apptType}
	if err := validate.Struct(form); err != nil {
		fmt.Println(err.Error())
		return err
	}

	appt, err := a.appointments.BookAppointment(ctx, models.BookAppointmentRequest{
		DoctorID: doctorID,
		Date:     date,
		Time:     slot,
		Type:     models.AppointmentType(apptType),
		Reason:   reason,
	})
	if err != nil {
		fmt.Printf("Booking unsuccessful: %s\n", err.Error())
		return err
	}

	fmt.Printf("Booked %s at %s (appointment %s)\n",
		appt.DateTime.Local().Format("2006-01-02"), appt.DateTime.Local().Format("15:04"), appt.ID)
	if appt.MeetingLink != "" {
		fmt.Printf("Meeting link: %s\n", appt.MeetingLink)
	}
	return nil
}

// CancelAppointment cancels a consultation by ID.
func (a *App) CancelAppointment(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter appointment id", os.Stdout)
	if err != nil {
		return err
	}
	reason, err := getSimpleText(a.reader, "Cancellation reason", os.Stdout)
	if err != nil {
		return err
	}

	appt, err := a.appointments.CancelAppointment(ctx, id, reason)
	if err != nil {
		fmt.Printf("Cancellation unsuccessful: %s\n", err.Error())
		return err
	}
	fmt.Printf("Appointment %s is now %s.\n", appt.ID, appt.Status)
	return nil
}
