// Package screen holds the dashboard forms as small state machines.
//
// Every screen moves Idle → Submitting → Success, or back to Idle with the
// last error kept for display. Screens never render anything; the HTTP
// surface and the CLI drive them and read their state.
package screen
