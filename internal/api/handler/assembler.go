package handler

import (
	"fmt"

	"github.com/dogwalk/marketplace/internal/core/domain"
	"github.com/dogwalk/marketplace/internal/core/ports"
)

// Response shapes embed their related entities and resource links, mirroring
// what clients navigate instead of raw foreign keys. Assembly is pure; no
// lookups happen here.

type apiUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsOwner  bool   `json:"isOwner"`
	IsWalker bool   `json:"isWalker"`
	UserURL  string `json:"userUrl"`
	DogsURL  string `json:"dogsUrl"`
}

type apiDog struct {
	ID     string  `json:"id"`
	Owner  apiUser `json:"owner"`
	Name   string  `json:"name"`
	Breed  string  `json:"breed"`
	Age    int     `json:"age"`
	DogURL string  `json:"dogUrl"`
}

type apiLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type apiJob struct {
	ID       string           `json:"id"`
	Owner    apiUser          `json:"owner"`
	Dog      apiDog           `json:"dog"`
	Walker   *apiUser         `json:"walker,omitempty"`
	Status   domain.JobStatus `json:"status"`
	Pay      float64          `json:"pay"`
	Location apiLocation      `json:"location"`
	Deadline int64            `json:"deadline,omitempty"`
	JobURL   string           `json:"jobUrl"`
}

// Assembler composes persisted rows into response aggregates, deriving the
// resource links from the configured base URL.
type Assembler struct {
	baseURL string
}

func NewAssembler(baseURL string) *Assembler {
	return &Assembler{baseURL: baseURL}
}

func (a *Assembler) User(u *domain.User) apiUser {
	return apiUser{
		ID:       u.ID,
		Username: u.Username,
		IsOwner:  u.IsOwner,
		IsWalker: u.IsWalker,
		UserURL:  fmt.Sprintf("%s/users/%s", a.baseURL, u.ID),
		DogsURL:  fmt.Sprintf("%s/users/%s/dogs", a.baseURL, u.ID),
	}
}

func (a *Assembler) Dog(d *domain.Dog, owner *domain.User) apiDog {
	return apiDog{
		ID:     d.ID,
		Owner:  a.User(owner),
		Name:   d.Name,
		Breed:  d.Breed,
		Age:    d.Age,
		DogURL: fmt.Sprintf("%s/users/%s/dogs/%s", a.baseURL, owner.ID, d.ID),
	}
}

// Job tolerates an absent walker: the field is omitted from the payload
// rather than rendered empty or failed.
func (a *Assembler) Job(detail *ports.JobDetail) apiJob {
	var walker *apiUser
	if detail.Walker != nil {
		w := a.User(detail.Walker)
		walker = &w
	}

	return apiJob{
		ID:     detail.Job.ID,
		Owner:  a.User(detail.Owner),
		Dog:    a.Dog(detail.Dog, detail.Owner),
		Walker: walker,
		Status: detail.Job.Status,
		Pay:    detail.Job.Pay,
		Location: apiLocation{
			Latitude:  detail.Job.Location.Latitude,
			Longitude: detail.Job.Location.Longitude,
		},
		Deadline: detail.Job.Deadline,
		JobURL:   fmt.Sprintf("%s/jobs/%s", a.baseURL, detail.Job.ID),
	}
}

func (a *Assembler) Jobs(details []*ports.JobDetail) []apiJob {
	out := make([]apiJob, 0, len(details))
	for _, d := range details {
		out = append(out, a.Job(d))
	}
	return out
}

func (a *Assembler) Dogs(details []*ports.DogDetail) []apiDog {
	out := make([]apiDog, 0, len(details))
	for _, d := range details {
		out = append(out, a.Dog(d.Dog, d.Owner))
	}
	return out
}
