package apihandlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/docebot/docebot/pkg/chat"
	"github.com/docebot/docebot/pkg/models"
	"github.com/docebot/docebot/pkg/server/handlertools"

	"github.com/go-chi/chi/v5"
)

// PostCSVEnrollHandler runs a bulk enrollment operation from an uploaded
// CSV. Accepts either a multipart upload (fields "operation" and "file") or
// a JSON models.CSVRequest body with pre-parsed rows.
func PostCSVEnrollHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		request, err := decodeCSVRequest(r)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		processor := chat.NewCSVProcessor(appState)
		result, err := processor.Process(r.Context(), request.Operation, request.CSVData)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		log.Infof(
			"csv %s: %d rows, %d succeeded, %d failed",
			request.Operation,
			result.Summary.Total, result.Summary.Succeeded, result.Summary.Failed,
		)

		response := chat.FormatCSVResult(request.Operation, result)
		if err := handlertools.EncodeJSON(w, response); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// PostCSVValidateHandler checks a CSV without running it.
func PostCSVValidateHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		request, err := decodeCSVRequest(r)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		processor := chat.NewCSVProcessor(appState)
		result := processor.Validate(request.Operation, request.CSVData)
		if err := handlertools.EncodeJSON(w, result); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// GetCSVTemplateHandler serves a downloadable example CSV for an operation.
func GetCSVTemplateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		operation := chi.URLParam(r, "operation")
		template, err := chat.CSVTemplate(operation)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set(
			"Content-Disposition",
			fmt.Sprintf("attachment; filename=%s_template.csv", operation),
		)
		_, _ = w.Write([]byte(template))
	}
}

// GetCSVOperationsHandler lists the supported bulk operations.
func GetCSVOperationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := handlertools.EncodeJSON(w, chat.CSVOperations()); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

func decodeCSVRequest(r *http.Request) (*models.CSVRequest, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return decodeCSVUpload(r)
	}

	var request models.CSVRequest
	if err := handlertools.DecodeJSON(r, &request); err != nil {
		return nil, models.NewBadRequestError("invalid request body: " + err.Error())
	}
	if request.Operation == "" {
		return nil, models.NewBadRequestError("operation must not be empty")
	}
	return &request, nil
}

func decodeCSVUpload(r *http.Request) (*models.CSVRequest, error) {
	operation := r.FormValue("operation")
	if operation == "" {
		return nil, models.NewBadRequestError("operation form field must not be empty")
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, models.NewBadRequestError("missing CSV file upload: " + err.Error())
	}
	defer file.Close()

	data, err := parseCSV(file)
	if err != nil {
		return nil, err
	}

	return &models.CSVRequest{Operation: operation, CSVData: *data}, nil
}

// parseCSV reads the header row and all data rows, skipping rows that are
// entirely empty. Ragged rows are tolerated; column lookups bounds-check.
func parseCSV(reader io.Reader) (*models.CSVData, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	headers, err := csvReader.Read()
	if err != nil {
		return nil, models.NewBadRequestError("could not read CSV header: " + err.Error())
	}

	var rows [][]string
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, models.NewBadRequestError("could not parse CSV: " + err.Error())
		}
		empty := true
		for _, field := range record {
			if strings.TrimSpace(field) != "" {
				empty = false
				break
			}
		}
		if !empty {
			rows = append(rows, record)
		}
	}

	return &models.CSVData{Headers: headers, ValidRows: rows}, nil
}
