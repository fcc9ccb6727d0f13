package domain

import "errors"

var ErrDogNotFound = errors.New("dog not found")

// ErrDogNotOwned is returned when a job references a dog that does not
// belong to the posting owner.
var ErrDogNotOwned = errors.New("dog does not belong to caller")

// ErrDogInUse is returned when deleting a dog that an active job still
// references. Only jobs in the paid state release the dog.
var ErrDogInUse = errors.New("dog is referenced by an active job")

// Dog is an owned entity. OwnerID is set at creation and never changes.
type Dog struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	Breed   string `json:"breed"`
	Age     int    `json:"age"`
}
