package db

import "errors"

// ErrNotFound is a common error for when a document is not found in Firestore.
var ErrNotFound = errors.New("document not found")

// ErrAlreadyAssigned is returned by OrderRepository.Claim when the order was
// assigned between the caller's read and the transactional write.
var ErrAlreadyAssigned = errors.New("order already assigned")
