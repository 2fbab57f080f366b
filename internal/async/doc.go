// Package async separates blocking work from the single presentation goroutine.
//
// Background work runs through a Bridge, which starts each task on its own goroutine and
// converts panics into errors. Anything that touches presentation state is handed to a
// Presenter, whose Loop implementation executes closures one at a time, in submission
// order, on the goroutine that called Run. Presentation state needs no lock as long as
// every mutation is dispatched.
package async
