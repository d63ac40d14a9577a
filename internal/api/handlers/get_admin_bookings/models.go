package get_admin_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/parkhub/parkhub-booking/internal/domain"
	"github.com/parkhub/parkhub-booking/internal/service/bookings/models"
)

// parseQuery разбирает query-параметры административной выборки
// Ошибочные значения числовых и датовых параметров считаются ошибкой клиента
func parseQuery(query url.Values, actorID int64) (*models.GetAllBookingsRequest, error) {
	req := &models.GetAllBookingsRequest{ActorID: actorID}

	if raw := query.Get("userId"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.UserID = &userID
	}

	if raw := query.Get("slotId"); raw != "" {
		slotID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.SlotID = &slotID
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.ParseInLocation(domain.DateFormat, raw, time.Local)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.ParseInLocation(domain.DateFormat, raw, time.Local)
		if err != nil {
			return nil, err
		}
		// Верхняя граница охватывает весь указанный день
		end := to.AddDate(0, 0, 1)
		req.To = &end
	}

	if raw := query.Get("includeCancelled"); raw != "" {
		includeCancelled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = includeCancelled
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}

	return req, nil
}
