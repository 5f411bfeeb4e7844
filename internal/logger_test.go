package internal

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogger_ComponentFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, LogLevelDebug, []Component{ComponentTransaction})

	logger.Info(ComponentTransaction, "deleted transaction %d", 7)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected a JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["component"] != string(ComponentTransaction) {
		t.Errorf("component = %v, want %s", entry["component"], ComponentTransaction)
	}
	if entry["message"] != "deleted transaction 7" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
}

func TestLogger_FiltersComponentsAndLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     LogLevel
		component Component
		log       func(l *Logger, c Component)
		wantEmpty bool
	}{
		{name: "Disabled Component", level: LogLevelDebug, component: ComponentNATS, log: func(l *Logger, c Component) { l.Error(c, "x") }, wantEmpty: true},
		{name: "Below Level", level: LogLevelWarn, component: ComponentStorage, log: func(l *Logger, c Component) { l.Info(c, "x") }, wantEmpty: true},
		{name: "At Level", level: LogLevelWarn, component: ComponentStorage, log: func(l *Logger, c Component) { l.Warn(c, "x") }},
		{name: "Structured", level: LogLevelDebug, component: ComponentStorage, log: func(l *Logger, c Component) {
			logger := l.Component(c)
			logger.Debug().Int64("id", 3).Msg("x")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter(&buf, tt.level, []Component{ComponentStorage})
			tt.log(logger, tt.component)
			if (buf.Len() == 0) != tt.wantEmpty {
				t.Errorf("output = %q, wantEmpty %v", buf.String(), tt.wantEmpty)
			}
		})
	}
}

func TestLogger_ToggleComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, LogLevelInfo, nil)

	logger.Info(ComponentSearch, "hidden")
	logger.EnableComponent(ComponentSearch)
	if !logger.IsComponentEnabled(ComponentSearch) {
		t.Fatal("component not enabled")
	}
	logger.Info(ComponentSearch, "visible")
	logger.DisableComponent(ComponentSearch)
	logger.Info(ComponentSearch, "hidden again")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "visible") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestParseLogLevelAndComponents(t *testing.T) {
	if level, err := ParseLogLevel("DEBUG"); err != nil || level != LogLevelDebug {
		t.Errorf("ParseLogLevel(DEBUG) = %v, %v", level, err)
	}
	if _, err := ParseLogLevel("loud"); err == nil {
		t.Error("Expected an error for an unknown level")
	}

	components, err := ParseComponents([]string{"trans", "Storage"})
	if err != nil || len(components) != 2 || components[0] != ComponentTransaction {
		t.Errorf("ParseComponents() = %v, %v", components, err)
	}
	if all, _ := ParseComponents(nil); len(all) != len(AllComponents) {
		t.Errorf("ParseComponents(nil) = %v, want every component", all)
	}
	if _, err := ParseComponents([]string{"HID"}); err == nil {
		t.Error("Expected an error for an unknown component")
	}
}
