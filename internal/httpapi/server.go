// Package httpapi exposes the report pipeline over HTTP: a health check for
// the hosting platform and a multipart upload endpoint that returns the
// finished report.
package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"efazi/internal/report"
	"efazi/internal/rod"
	"efazi/internal/table"
)

// Server wires the pipeline behind a fiber app.
type Server struct {
	app      *fiber.App
	pipeline *rod.Pipeline
	port     int
}

// NewServer builds the HTTP server around an existing pipeline.
func NewServer(pipeline *rod.Pipeline, port int) *Server {
	app := fiber.New(fiber.Config{
		AppName:   "efazi",
		BodyLimit: 64 * 1024 * 1024, // raw exports can be large
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{app: app, pipeline: pipeline, port: port}

	app.Get("/", s.health)
	app.Post("/api/rod/report", s.buildReport)

	return s
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on the configured port.
func (s *Server) Listen() error {
	log.Info().Int("port", s.port).Msg("HTTP API listening")
	return s.app.Listen(fmt.Sprintf(":%d", s.port))
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.SendString("Efazi Robot is online and healthy!")
}

// buildReport accepts the three source files (multipart fields base, source1,
// source2), runs the pipeline, and returns the report as an attachment.
// format=xlsx switches the output from CSV to a workbook.
func (s *Server) buildReport(c *fiber.Ctx) error {
	base, err := loadFormTable(c, "base")
	if err != nil {
		return inputError(c, err)
	}
	src1, err := loadFormTable(c, "source1")
	if err != nil {
		return inputError(c, err)
	}
	src2, err := loadFormTable(c, "source2")
	if err != nil {
		return inputError(c, err)
	}

	records, err := s.pipeline.Run(c.Context(), base, src1, src2, nil)
	if err != nil {
		log.Error().Err(err).Msg("Pipeline run failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "report generation failed"})
	}

	var buf bytes.Buffer
	switch c.Query("format", "csv") {
	case "csv":
		err = report.WriteCSV(&buf, records)
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="Careem_ROD_Final.csv"`)
	case "xlsx":
		err = report.WriteXLSX(&buf, records)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="Careem_ROD_Final.xlsx"`)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format must be csv or xlsx"})
	}
	if err != nil {
		log.Error().Err(err).Msg("Report serialization failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "report serialization failed"})
	}

	return c.Send(buf.Bytes())
}

func loadFormTable(c *fiber.Ctx, field string) (*table.Table, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing upload %q", field)
	}
	data, err := readAll(fh)
	if err != nil {
		return nil, fmt.Errorf("read upload %q: %w", field, err)
	}
	return table.Load(fh.Filename, data)
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// inputError maps loader failures to 400s; anything structural about the
// upload is the caller's problem, not ours.
func inputError(c *fiber.Ctx, err error) error {
	log.Warn().Err(err).Msg("Rejected upload")
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
