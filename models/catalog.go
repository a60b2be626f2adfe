package models

import "time"

// PriceInfo test price, Original is the struck-through price when discounted
type PriceInfo struct {
	Original *int64 `json:"original,omitempty" bson:"original,omitempty"`
	Final    int64  `json:"final" bson:"final"`
	Currency string `json:"currency,omitempty" bson:"currency,omitempty"`
}

// Test a bookable diagnostic test
type Test struct {
	ID                  string    `json:"id" bson:"_id"`
	Title               string    `json:"title" bson:"title"`
	Code                string    `json:"code" bson:"code"`
	Slug                string    `json:"slug" bson:"slug"`
	Category            string    `json:"category" bson:"category"`
	Description         string    `json:"description,omitempty" bson:"description,omitempty"`
	Price               PriceInfo `json:"price" bson:"price"`
	SampleType          string    `json:"sampleType" bson:"sampleType"`
	TurnaroundTime      string    `json:"turnaroundTime" bson:"turnaroundTime"`
	PreparationRequired bool      `json:"preparationRequired" bson:"preparationRequired"`
	IsActive            bool      `json:"isActive" bson:"isActive"`
	CreatedAt           time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (t Test) GetID() string { return t.ID }

// HealthPackage a bundle of tests sold at a percentage discount
type HealthPackage struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Subtitle    string    `json:"subtitle,omitempty" bson:"subtitle,omitempty"`
	Slug        string    `json:"slug" bson:"slug"`
	Category    string    `json:"category" bson:"category"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	TestIDs     []string  `json:"testIds" bson:"testIds"`
	TestCount   int       `json:"testCount" bson:"testCount"`
	Price       int64     `json:"price" bson:"price"`
	Discount    float64   `json:"discount,omitempty" bson:"discount,omitempty"`
	ReportTime  string    `json:"reportTime,omitempty" bson:"reportTime,omitempty"`
	IsActive    bool      `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (p HealthPackage) GetID() string { return p.ID }

// LabLocation a collection centre patients can visit
type LabLocation struct {
	ID       string `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Address  string `json:"address" bson:"address"`
	IsActive bool   `json:"isActive" bson:"isActive"`
}

func (l LabLocation) GetID() string { return l.ID }

// TimeSlot a visit slot at a lab location
type TimeSlot struct {
	ID        string `json:"id" bson:"_id"`
	Time      string `json:"time" bson:"time"`
	Available bool   `json:"available" bson:"available"`
}

func (s TimeSlot) GetID() string { return s.ID }
