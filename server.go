package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"github.com/muhammadolammi/portfolioparser/internal/database"
	"github.com/muhammadolammi/portfolioparser/internal/logger"
	"github.com/muhammadolammi/portfolioparser/internal/resume"
	"github.com/muhammadolammi/portfolioparser/internal/storage"
	"github.com/muhammadolammi/portfolioparser/internal/textextract"
)

type API struct {
	Service   *Service
	Publisher Publisher
	// BaseURL prefixes generated portfolio links.
	BaseURL string
}

func newServer(cfg Config, api *API) *server.Hertz {
	h := server.New(
		server.WithHostPorts(cfg.HTTPAddr),
		server.WithMaxRequestBodySize(int(cfg.MaxUploadBytes)+1<<20),
		server.WithExitWaitTime(5*time.Second),
	)
	api.Register(h)
	return h
}

func (a *API) Register(h *server.Hertz) {
	h.Use(allowAnyOrigin)

	h.POST("/upload", a.upload)
	h.POST("/parse", a.parse)
	h.POST("/parse/async", a.parseAsync)
	h.GET("/parse/:id", a.parseStatus)
	h.POST("/generate", a.generate)
	h.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
	// preflight; answered by allowAnyOrigin
	h.OPTIONS("/*path", func(c context.Context, ctx *app.RequestContext) {})
}

func allowAnyOrigin(c context.Context, ctx *app.RequestContext) {
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type")
	ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	if string(ctx.Method()) == consts.MethodOptions {
		ctx.AbortWithStatus(consts.StatusNoContent)
		return
	}
	ctx.Next(c)
}

func (a *API) upload(c context.Context, ctx *app.RequestContext) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "Upload failed: missing file"})
		return
	}
	if !textextract.Supported(fileHeader.Filename) {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "Upload failed: unsupported file format"})
		return
	}
	if a.Service.MaxUploadBytes > 0 && fileHeader.Size > a.Service.MaxUploadBytes {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "File size exceeds the allowed limit!"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "Upload failed: could not open file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "Upload failed: " + err.Error()})
		return
	}

	upload, err := a.Service.Upload(c, fileHeader.Filename, data)
	switch {
	case errors.Is(err, ErrUploadTooLarge):
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "File size exceeds the allowed limit!"})
		return
	case errors.Is(err, textextract.ErrUnsupportedFormat):
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "Upload failed: " + err.Error()})
		return
	case err != nil:
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("upload failed")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "An error occurred: " + err.Error()})
		return
	}

	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("stored_name", upload.StoredName).
		Int64("size", upload.SizeBytes).
		Msg("file uploaded")
	ctx.JSON(consts.StatusOK, UploadResponse{
		Message:  "File uploaded successfully",
		FileName: upload.StoredName,
	})
}

func (a *API) parse(c context.Context, ctx *app.RequestContext) {
	req, ok := bindParseRequest(ctx)
	if !ok {
		return
	}

	data, err := a.Service.ParseStored(c, req.FileName)
	if err != nil {
		status := parseErrorStatus(err)
		if status == consts.StatusInternalServerError {
			logger.Error().Err(err).Str("file", req.FileName).Msg("parse failed")
		}
		ctx.JSON(status, utils.H{"error": "Parsing failed: " + err.Error()})
		return
	}
	ctx.JSON(consts.StatusOK, data)
}

func (a *API) parseAsync(c context.Context, ctx *app.RequestContext) {
	req, ok := bindParseRequest(ctx)
	if !ok {
		return
	}

	upload, err := a.Service.FindUpload(c, req.FileName)
	if err != nil {
		ctx.JSON(parseErrorStatus(err), utils.H{"error": "Parsing failed: " + err.Error()})
		return
	}

	job, err := a.Service.DB.CreateParseJob(c, database.CreateParseJobParams{
		ID:       uuid.New(),
		UploadID: upload.ID,
	})
	if err != nil {
		logger.Error().Err(err).Str("file", req.FileName).Msg("could not create parse job")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "An error occurred: " + err.Error()})
		return
	}

	if err := a.Publisher.PublishJob(ParseJobMessage{JobID: job.ID, UploadID: upload.ID}); err != nil {
		logger.Error().Err(err).Str("job_id", job.ID.String()).Msg("could not enqueue parse job")
		failErr := a.Service.DB.FailParseJob(c, database.FailParseJobParams{Error: "enqueue failed: " + err.Error(), ID: job.ID})
		if failErr != nil {
			logger.Warn().Err(failErr).Str("job_id", job.ID.String()).Msg("error marking job failed")
		}
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "An error occurred: could not enqueue parse job"})
		return
	}

	ctx.JSON(consts.StatusAccepted, ParseJobResponse{JobID: job.ID, Status: job.Status})
}

func (a *API) parseStatus(c context.Context, ctx *app.RequestContext) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "invalid job id"})
		return
	}

	job, err := a.Service.DB.GetParseJob(c, id)
	if errors.Is(err, sql.ErrNoRows) {
		ctx.JSON(consts.StatusNotFound, utils.H{"error": "parse job not found"})
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("job_id", id.String()).Msg("could not load parse job")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "An error occurred: " + err.Error()})
		return
	}

	resp := ParseJobResponse{JobID: job.ID, Status: job.Status}
	switch job.Status {
	case StatusCompleted:
		resp.Result = job.Result
	case StatusFailed:
		resp.Error = job.Error.String
	}
	ctx.JSON(consts.StatusOK, resp)
}

// generate hands back a portfolio link; the site itself is not built.
func (a *API) generate(c context.Context, ctx *app.RequestContext) {
	var data resume.PortfolioData
	if err := json.Unmarshal(ctx.Request.Body(), &data); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "Website generation failed: " + err.Error()})
		return
	}

	url := fmt.Sprintf("%s/portfolio/%s", strings.TrimRight(a.BaseURL, "/"), uuid.NewString())
	logger.Info().Str("name", data.PersonalInfo.Name).Str("url", url).Msg("portfolio link generated")
	ctx.JSON(consts.StatusOK, GenerateResponse{
		WebsiteURL: url,
		Message:    "Website generated successfully",
	})
}

func bindParseRequest(ctx *app.RequestContext) (ParseRequest, bool) {
	var req ParseRequest
	if err := json.Unmarshal(ctx.Request.Body(), &req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "Parsing failed: invalid request body"})
		return req, false
	}
	if strings.TrimSpace(req.FileName) == "" {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "Parsing failed: fileName is required"})
		return req, false
	}
	return req, true
}

func parseErrorStatus(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return consts.StatusNotFound
	case errors.Is(err, storage.ErrInvalidKey),
		errors.Is(err, textextract.ErrUnsupportedFormat),
		errors.Is(err, textextract.ErrUnreadableDocument):
		return consts.StatusBadRequest
	default:
		return consts.StatusInternalServerError
	}
}
