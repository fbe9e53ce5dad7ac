package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hygieia-health/hygieia-cli/internal/models"
)

func (f DoctorFilters) values() url.Values {
	q := url.Values{}
	if f.Specialization != "" {
		q.Set("specialization", f.Specialization)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.MinRating > 0 {
		q.Set("minRating", strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}
	if f.MaxFee > 0 {
		q.Set("maxFee", strconv.FormatFloat(f.MaxFee, 'f', -1, 64))
	}
	if f.Available {
		q.Set("available", "true")
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

func (f ProductFilters) values() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.InStock {
		q.Set("inStock", "true")
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

func (c *RESTClient) Doctors(ctx context.Context, filters DoctorFilters) ([]models.Doctor, *models.Pagination, error) {
	var doctors []models.Doctor
	pagination, err := c.do(ctx, http.MethodGet, "/doctors", filters.values(), nil, &doctors)
	if err != nil {
		return nil, nil, err
	}
	return doctors, pagination, nil
}

func (c *RESTClient) Doctor(ctx context.Context, id string) (*models.Doctor, error) {
	var doctor models.Doctor
	if _, err := c.do(ctx, http.MethodGet, "/doctors/"+id, nil, nil, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (c *RESTClient) TopRatedDoctors(ctx context.Context, limit int) ([]models.Doctor, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var doctors []models.Doctor
	if _, err := c.do(ctx, http.MethodGet, "/doctors/top-rated", q, nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// DoctorSlots lists the free consultation slots for one doctor on a date
// (YYYY-MM-DD).
func (c *RESTClient) DoctorSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	q := url.Values{}
	q.Set("date", date)
	var slots []string
	if _, err := c.do(ctx, http.MethodGet, "/doctors/"+doctorID+"/slots", q, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *RESTClient) Products(ctx context.Context, filters ProductFilters) ([]models.Product, *models.Pagination, error) {
	var products []models.Product
	pagination, err := c.do(ctx, http.MethodGet, "/products", filters.values(), nil, &products)
	if err != nil {
		return nil, nil, err
	}
	return products, pagination, nil
}

func (c *RESTClient) Product(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if _, err := c.do(ctx, http.MethodGet, "/products/"+id, nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *RESTClient) FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var products []models.Product
	if _, err := c.do(ctx, http.MethodGet, "/products/featured", q, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *RESTClient) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	q := url.Values{}
	q.Set("q", query)
	var products []models.Product
	if _, err := c.do(ctx, http.MethodGet, "/products/search", q, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductCategories lists the catalog's category identifiers.
func (c *RESTClient) ProductCategories(ctx context.Context) ([]models.ProductCategory, error) {
	var categories []models.ProductCategory
	if _, err := c.do(ctx, http.MethodGet, "/products/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *RESTClient) LabTests(ctx context.Context) ([]models.LabTest, error) {
	var tests []models.LabTest
	if _, err := c.do(ctx, http.MethodGet, "/lab-tests", nil, nil, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

func (c *RESTClient) LabTest(ctx context.Context, id string) (*models.LabTest, error) {
	var test models.LabTest
	if _, err := c.do(ctx, http.MethodGet, "/lab-tests/"+id, nil, nil, &test); err != nil {
		return nil, err
	}
	return &test, nil
}
