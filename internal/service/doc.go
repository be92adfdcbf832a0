// Package service holds the two use cases that touch the flashcard store:
// checking whether a phrase already has a card, and submitting a new card.
//
// Both services receive their dependencies through constructor injection and
// report outcomes as booleans to the batch loop. Failures never propagate as
// errors; they are logged with enough context to act on and turned into a
// "no" answer. The existence check fails open (an unreachable store means
// "not present") while submission fails closed (anything but a clean store
// reply means "not submitted").
package service
