package models

import "time"

// Report is an append-only status note stored in the `reports` subcollection
// of exactly one order. Reports are never updated or deleted. CreatedAt is a
// Firestore server timestamp in storage and serializes to RFC 3339 in JSON.
type Report struct {
	ID         string    `json:"id" firestore:"-"`
	AuthorUID  string    `json:"authorUid" firestore:"authorUid"`
	AuthorName string    `json:"authorName" firestore:"authorName"`
	Text       string    `json:"text" firestore:"text"`
	CreatedAt  time.Time `json:"created_at" firestore:"created_at,serverTimestamp"`
}
