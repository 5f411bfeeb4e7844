package internal

import (
	"os"

	"github.com/google/uuid"
)

func GenerateUUID() string {
	return uuid.New().String()
}

// GenerateClientID names this process towards message brokers
func GenerateClientID() string {
	hostname, err := os.Hostname()
	if err != nil {
		GetLogger().Warn(ComponentGeneral, "Error getting hostname: %v", err)
		return DefaultAppName
	}
	return DefaultAppName + "-" + hostname
}
