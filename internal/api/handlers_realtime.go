package api

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/taskflow/internal/realtime"
)

// Stream serves server-sent events for one lists or day channel of the caller's company.
func (handler *Handler) Stream(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	if handler.hub == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "realtime disabled")
	}

	channel := c.Query("channel")
	companyID, ok := realtime.ChannelCompanyID(channel)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid channel")
	}
	if companyID != user.CompanyID {
		return apiError(c, fiber.StatusNotFound, "not found")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	events, cancel := handler.hub.Subscribe(channel)
	heartbeat := handler.heartbeat
	c.Context().SetBodyStreamWriter(func(writer *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		fmt.Fprintf(writer, "retry: 3000\n: connected %s\n\n", channel)
		if err := writer.Flush(); err != nil {
			return
		}

		for {
			select {
			case event, open := <-events:
				if !open {
					return
				}
				if err := writeStreamEvent(writer, event); err != nil {
					return
				}
			case <-ticker.C:
				fmt.Fprint(writer, ": ping\n\n")
				if err := writer.Flush(); err != nil {
					return
				}
			}
		}
	})
	return nil
}

func writeStreamEvent(writer *bufio.Writer, event realtime.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("encode realtime event %s on %s: %v", event.Name, event.Channel, err)
		return nil
	}
	fmt.Fprintf(writer, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Name, data)
	return writer.Flush()
}
