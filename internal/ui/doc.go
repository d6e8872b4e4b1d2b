// Package ui holds the color themes shared by the trial table, the spinner
// and the terminal dashboard.
package ui
