// Package testerror prepares script error reports for display to a developer
// running tests.
//
// A report is abbreviated before it is rendered: in every error of the tree
// (the error itself, its cause chain and its aggregated errors) the trailing
// run of frames that belong to the runtime's extension namespace is removed.
// A trace made only of extension frames is kept as is, so failures inside the
// runtime itself remain diagnosable. The root message also loses the
// "Uncaught " prefix the runtime adds to unhandled errors.
package testerror
