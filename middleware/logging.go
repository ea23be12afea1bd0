package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/skeletohq/skeleto/request"
	"github.com/skeletohq/skeleto/response"
)

// Logging provides basic access logging without colors.
func Logging() Middleware {
	return func(ctx *request.Context, next Next) *response.Response {
		now := time.Now()
		resp := next()
		log.Printf("%s %s %d in %s\n", ctx.Method, ctx.Path, resp.Status, time.Since(now))
		return resp
	}
}

// LoggingColored provides colored access logging.
func LoggingColored() Middleware {
	methodStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true).Background(lipgloss.Color("12")).Width(8).Align(lipgloss.Center)

	return func(ctx *request.Context, next Next) *response.Response {
		now := time.Now()
		resp := next()

		statusStyle := getStatusCodeStyle(int(resp.Status))
		styledStatus := statusStyle.Render(fmt.Sprintf("%d", resp.Status))
		styledMethod := methodStyle.Render(string(ctx.Method))

		log.Printf("%s %s %s in %s\n", styledMethod, ctx.Path, styledStatus, time.Since(now))

		return resp
	}
}

// getStatusCodeStyle returns a lipgloss style for HTTP status codes
func getStatusCodeStyle(statusCode int) lipgloss.Style {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	case statusCode >= 300 && statusCode < 400:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	case statusCode >= 400 && statusCode < 500:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	case statusCode >= 500:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	}
}
