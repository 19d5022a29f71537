// Package ratingservice records star votes on exhibition projects.
//
// Votes upsert per (project, user). Jury members vote while the jury window
// is open and their votes feed the winners engine; public voting opens once
// the exhibition ends.
package ratingservice
