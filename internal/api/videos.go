package api

import (
	"context"
	"encoding/json"
	"net/http"

	"rhystmorgan/onboard/internal/models"
)

// ListVideos fetches the catalogue. The service answers either with a bare
// array or with {"results": [...]}; media locations are resolved against
// the base URL.
func (c *Client) ListVideos(ctx context.Context) ([]models.Video, error) {
	req, requestID, err := c.newRequest(ctx, http.MethodGet, VideosPath, nil)
	if err != nil {
		return nil, err
	}

	logger := c.logger.With().Str("request_id", requestID).Logger()

	status, body, err := c.do(req)
	if err != nil {
		logger.Error().Err(err).Msg("video listing failed")
		return nil, err
	}

	if status < 200 || status >= 300 {
		msg := ""
		var obj map[string]any
		if json.Unmarshal(body, &obj) == nil {
			msg = errorText(obj["error"])
		}
		logger.Warn().Int("status", status).Str("error", msg).Msg("video listing rejected")
		return nil, NewStatusError(status, msg)
	}

	videos, err := decodeVideos(body)
	if err != nil {
		return nil, NewError(ErrInvalidResponse, "failed to decode video listing", err)
	}

	for i := range videos {
		videos[i] = videos[i].Resolve(c.config.BaseURL)
	}

	logger.Debug().Int("count", len(videos)).Msg("videos listed")
	return videos, nil
}

func decodeVideos(body []byte) ([]models.Video, error) {
	var list []models.Video
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var page struct {
		Results []models.Video `json:"results"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}
