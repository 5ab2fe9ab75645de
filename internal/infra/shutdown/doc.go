// Package shutdown runs cleanup hooks when the process is asked to stop.
//
// Usage:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown(server.Shutdown)
//	err := h.Wait() // blocks until SIGINT or SIGTERM
package shutdown
