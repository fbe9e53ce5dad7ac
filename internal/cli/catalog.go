package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hygieia-health/hygieia-cli/internal/api"
	"github.com/hygieia-health/hygieia-cli/internal/models"
)

// Doctors lists doctors, optionally filtered by specialization.
func (a *App) Doctors(ctx context.Context) error {
	spec, err := getSimpleText(a.reader, "Specialization (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	doctors, pagination, err := a.doctors.Doctors(ctx, api.DoctorFilters{Specialization: spec})
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return err
	}

	for _, d := range doctors {
		printDoctorLine(d)
	}
	if pagination != nil {
		fmt.Printf("Page %d of %d (%d doctors)\n", pagination.Page, pagination.TotalPages, pagination.Total)
	}
	return nil
}

// ShowDoctor fetches and displays a single doctor by ID.
func (a *App) ShowDoctor(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter doctor id", os.Stdout)
	if err != nil {
		return err
	}

	d, err := a.doctors.Doctor(ctx, id)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return err
	}

	fmt.Printf("%s, %s\n", d.Name, d.DoctorInfo.Specialization)
	fmt.Printf("Qualification: %s, %d years of experience\n", d.DoctorInfo.Qualification, d.DoctorInfo.Experience)
	fmt.Printf("Consultation fee: %.2f\n", d.DoctorInfo.ConsultationFee)
	fmt.Printf("Rating: %.1f (%d reviews)\n", d.DoctorInfo.Rating, d.DoctorInfo.ReviewCount)
	if d.DoctorInfo.Hospital != "" {
		fmt.Printf("Hospital: %s\n", d.DoctorInfo.Hospital)
	}
	if len(d.DoctorInfo.Languages) > 0 {
		fmt.Printf("Languages: %s\n", strings.Join(d.DoctorInfo.Languages, ", "))
	}
	if d.DoctorInfo.About != "" {
		fmt.Println(d.DoctorInfo.About)
	}
	return nil
}

// Slots lists a doctor's free time slots for a date.
func (a *App) Slots(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter doctor id", os.Stdout)
	if err != nil {
		return err
	}
	date, err := getSimpleText(a.reader, "Enter date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}

	slots, err := a.doctors.DoctorSlots(ctx, id, date)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return err
	}
	if len(slots) == 0 {
		fmt.Println("No free slots.")
		return nil
	}
	fmt.Println(strings.Join(slots, "  "))
	return nil
}

// Products lists pharmacy products, optionally filtered by category.
func (a *App) Products(ctx context.Context) error {
	category, err := getSimpleText(a.reader, "Category (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	products, pagination, err := a.products.Products(ctx, api.ProductFilters{Category: models.ProductCategory(category)})
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return err
	}

	for _, p := range products {
		printProductLine(p)
	}
	if pagination != nil {
		fmt.Printf("Page %d of %d (%d products)\n", pagination.Page, pagination.TotalPages, pagination.Total)
	}
	return nil
}

// ShowProduct fetches and displays a single product by ID.
func (a *App) ShowProduct(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter product id", os.Stdout)
	if err != nil {
		return err
	}

	p, err := a.products.Product(ctx, id)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return err
	}

	fmt.Printf("%s (%s)\n", p.Name, p.Category)
	fmt.Printf("Price: %.2f", p.EffectivePrice())
	if p.DiscountPrice > 0 {
		fmt.Printf(" (was %.2f)", p.Price)
	}
	fmt.Println()
	fmt.Printf("Manufacturer: %s\n", p.Manufacturer)
	if p.RequiresPrescription {
		fmt.Println("Prescription required.")
	}
	if !p.InStock {
		fmt.Println("Out of stock.")
	}
	if p.Description != "" {
		fmt.Println(p.Description)
	}
	return nil
}

// Search runs a free-text product search.
func (a *App) Search(ctx context.Context) error {
	query, err := getSimpleText(a.reader, "Search for", os.Stdout)
	if err != nil {
		return err
	}
	if query == "" {
		return nil
	}

	products, err := a.products.SearchProducts(ctx, query)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return err
	}
	if len(products) == 0 {
		fmt.Println("Nothing found.")
		return nil
	}
	for _, p := range products {
		printProductLine(p)
	}
	return nil
}

// LabTests lists the available lab tests.
func (a *App) LabTests(ctx context.Context) error {
	tests, err := a.products.LabTests(ctx)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return err
	}
	for _, lt := range tests {
		fmt.Printf("%s  %-30s %8.2f  report in %s\n", lt.ID, lt.Name, lt.Price, lt.ReportTime)
	}
	return nil
}

func printDoctorLine(d models.Doctor) {
	availability := ""
	if !d.DoctorInfo.IsAvailable {
		availability = "  [unavailable]"
	}
	fmt.Printf("%s  %-25s %-20s %.1f★  %.2f%s\n",
		d.ID, d.Name, d.DoctorInfo.Specialization, d.DoctorInfo.Rating, d.DoctorInfo.ConsultationFee, availability)
}

func printProductLine(p models.Product) {
	stock := ""
	if !p.InStock {
		stock = "  [out of stock]"
	}
	fmt.Printf("%s  %-30s %8.2f%s\n", p.ID, p.Name, p.EffectivePrice(), stock)
}
