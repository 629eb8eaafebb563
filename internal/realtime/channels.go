package realtime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	EventTaskListsRefresh    = "task-lists:refresh"
	EventTaskInstanceRefresh = "task-instance:refresh"
	EventManagerNoteUpdate   = "manager-note:update"
)

const dayLayout = "2006-01-02"

// ListsChannel carries template changes for one company.
func ListsChannel(companyID uint) string {
	return fmt.Sprintf("company:%d:lists", companyID)
}

// DayChannel carries instance and note changes for one company and calendar day (UTC).
func DayChannel(companyID uint, day time.Time) string {
	return fmt.Sprintf("company:%d:day:%s", companyID, day.UTC().Format(dayLayout))
}

// ChannelCompanyID extracts the company id from a lists or day channel name.
func ChannelCompanyID(channel string) (uint, bool) {
	parts := strings.Split(strings.TrimSpace(channel), ":")
	if len(parts) < 3 || parts[0] != "company" {
		return 0, false
	}

	companyID, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil || companyID == 0 {
		return 0, false
	}

	switch {
	case len(parts) == 3 && parts[2] == "lists":
		return uint(companyID), true
	case len(parts) == 4 && parts[2] == "day":
		if _, err := time.Parse(dayLayout, parts[3]); err != nil {
			return 0, false
		}
		return uint(companyID), true
	default:
		return 0, false
	}
}
