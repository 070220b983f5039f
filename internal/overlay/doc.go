// Package overlay manages floating overlay panels for matched windows.
// It handles panel frame computation, creation through the host toolkit,
// and the reconciliation of displayed panels against the live window set.
package overlay
