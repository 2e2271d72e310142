package handlers

import (
	"heartguard-backend/internal/inference"
	"heartguard-backend/internal/notify"
)

var (
	classifier *inference.Client
	notifier   *notify.Service
)

// Setup wires the external collaborators the handlers call out to.
func Setup(c *inference.Client, n *notify.Service) {
	classifier = c
	notifier = n
}
