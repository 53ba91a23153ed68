// Package service executes complete scoring runs: it loads the source
// extracts, runs the pipeline, persists the result and writes the xlsx
// exports.
package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/maralthesage/RFM-Pipeline/internal/config"
	"github.com/maralthesage/RFM-Pipeline/internal/exporter"
	"github.com/maralthesage/RFM-Pipeline/internal/model"
	"github.com/maralthesage/RFM-Pipeline/internal/period"
	"github.com/maralthesage/RFM-Pipeline/internal/pipeline"
	"github.com/maralthesage/RFM-Pipeline/internal/source"
	"github.com/maralthesage/RFM-Pipeline/internal/store"
)

// Source extract filenames, one set per country directory.
const (
	fileCustomers      = "adressen.csv"
	fileOrders         = "auftraege.csv"
	fileNewsletter     = "newsletter.xlsx"
	fileLegacyGroups   = "kundengruppen.csv"
	fileFirstPurchases = "erstkauf.csv"
	fileCodeNames      = "gruppencodes.xlsx"
)

// Service wires the scoring engine to its inputs and outputs.
type Service struct {
	cfg   *config.AppConfig
	store *store.Store
}

// New creates a Service.
func New(cfg *config.AppConfig, st *store.Store) *Service {
	return &Service{cfg: cfg, store: st}
}

// RunSummary describes one finished run.
type RunSummary struct {
	RunID        string `json:"runId"`
	Country      string `json:"country"`
	PeriodNumber int    `json:"periodNumber"`
	Customers    int    `json:"customers"`
	SegmentsFile string `json:"segmentsFile"`
	SummaryFile  string `json:"summaryFile"`
}

// RunCountry scores one country at the given reference date, persists
// the run and writes both workbooks. progress may be nil.
func (s *Service) RunCountry(country string, reference time.Time, progress func(done, total int)) (*RunSummary, error) {
	info, err := period.ForCountry(reference, country)
	if err != nil {
		return nil, err
	}

	customers, err := readCustomers(s.cfg, country)
	if err != nil {
		return nil, err
	}
	orders, err := readOrders(s.cfg, country)
	if err != nil {
		return nil, err
	}

	priorGroups, err := s.priorGroups(country, info, customers)
	if err != nil {
		return nil, err
	}

	result, err := pipeline.Run(pipeline.Input{
		Customers:   customers,
		Orders:      orders,
		PriorGroups: priorGroups,
	}, pipeline.Options{
		Reference: reference,
		Country:   country,
		Workers:   s.cfg.Business.Workers,
		Progress:  progress,
	})
	if err != nil {
		return nil, err
	}

	runID, err := s.persist(result)
	if err != nil {
		return nil, err
	}

	segmentsFile, summaryFile, err := s.writeExports(runID, result)
	if err != nil {
		return nil, err
	}

	return &RunSummary{
		RunID:        runID,
		Country:      result.Country,
		PeriodNumber: result.PeriodNumber,
		Customers:    len(result.Profiles),
		SegmentsFile: segmentsFile,
		SummaryFile:  summaryFile,
	}, nil
}

// priorGroups prefers the previous half-year's persisted run and falls
// back to deriving labels from the legacy flat files.
func (s *Service) priorGroups(country string, info period.Info, customers []model.RawCustomerRecord) (map[string]string, error) {
	if s.store != nil {
		groups, err := s.store.GetPriorGroups(country, info.Number-1)
		if err != nil {
			return nil, fmt.Errorf("load prior groups: %w", err)
		}
		if len(groups) > 0 {
			return groups, nil
		}
	}

	legacy, err := readLegacyGroups(s.cfg, country)
	if err != nil {
		return nil, err
	}
	if legacy == nil {
		return map[string]string{}, nil
	}
	first, err := readFirstPurchases(s.cfg, country)
	if err != nil {
		return nil, err
	}
	codeNames, err := readCodeNames(s.cfg, country)
	if err != nil {
		return nil, err
	}
	return pipeline.DerivePriorGroups(pipeline.PriorGroupInput{
		Customers:     customers,
		FirstPurchase: first,
		Legacy:        legacy,
		CodeNames:     codeNames,
	}, info), nil
}

func (s *Service) persist(result *pipeline.Result) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("no store configured")
	}
	runID, err := s.store.CreateRun(result.Country, result.PeriodNumber, result.Reference, len(result.Profiles))
	if err != nil {
		return "", err
	}
	if err := s.store.BatchInsertProfiles(runID, result.Profiles); err != nil {
		return "", err
	}
	if err := s.store.BatchInsertSummary(runID, result.Summary); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Service) writeExports(runID string, result *pipeline.Result) (segmentsFile, summaryFile string, err error) {
	dataDir, err := config.EnsureDataDir(s.cfg)
	if err != nil {
		return "", "", fmt.Errorf("ensure data directory: %w", err)
	}

	segments, err := exporter.WriteSegments(result)
	if err != nil {
		return "", "", err
	}
	defer segments.Close()
	segmentsFile = filepath.Join(dataDir, "exports", runID+"_segmente.xlsx")
	if err := segments.SaveAs(segmentsFile); err != nil {
		return "", "", fmt.Errorf("save segments workbook: %w", err)
	}

	summary, err := exporter.WriteSummary(result)
	if err != nil {
		return "", "", err
	}
	defer summary.Close()
	summaryFile = filepath.Join(dataDir, "exports", runID+"_analytik.xlsx")
	if err := summary.SaveAs(summaryFile); err != nil {
		return "", "", fmt.Errorf("save summary workbook: %w", err)
	}

	return segmentsFile, summaryFile, nil
}

// ExportPath resolves a stored export by run id and kind ("segmente" or
// "analytik").
func (s *Service) ExportPath(runID, kind string) (string, error) {
	if kind != "segmente" && kind != "analytik" {
		return "", fmt.Errorf("unknown export kind %q", kind)
	}
	dataDir, err := config.EnsureDataDir(s.cfg)
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "exports", runID+"_"+kind+".xlsx"), nil
}

func readCustomers(cfg *config.AppConfig, country string) ([]model.RawCustomerRecord, error) {
	f, err := os.Open(config.SourcePath(cfg, country, fileCustomers))
	if err != nil {
		return nil, fmt.Errorf("open address extract: %w", err)
	}
	defer f.Close()
	customers, err := source.ReadCustomers(f)
	if err != nil {
		return nil, err
	}
	if err := mergeNewsletter(cfg, country, customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// mergeNewsletter joins the mailing-tool export onto the customer
// records. A missing file means nobody is subscribed.
func mergeNewsletter(cfg *config.AppConfig, country string, customers []model.RawCustomerRecord) error {
	f, err := os.Open(config.SourcePath(cfg, country, fileNewsletter))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open newsletter export: %w", err)
	}
	defer f.Close()

	types, err := source.ReadNewsletterTypes(f)
	if err != nil {
		return err
	}
	for i := range customers {
		if t, ok := types[customers[i].CustomerID]; ok {
			if t == "" {
				t = "Newsletter"
			}
			customers[i].NewsletterType = t
		}
	}
	return nil
}

func readOrders(cfg *config.AppConfig, country string) ([]model.OrderRecord, error) {
	f, err := os.Open(config.SourcePath(cfg, country, fileOrders))
	if err != nil {
		return nil, fmt.Errorf("open invoice extract: %w", err)
	}
	defer f.Close()
	return source.ReadOrders(f)
}

// readLegacyGroups returns (nil, nil) when the extract does not exist.
func readLegacyGroups(cfg *config.AppConfig, country string) ([]pipeline.LegacyGroupRecord, error) {
	f, err := os.Open(config.SourcePath(cfg, country, fileLegacyGroups))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open customer-group extract: %w", err)
	}
	defer f.Close()
	return source.ReadLegacyGroups(f)
}

func readFirstPurchases(cfg *config.AppConfig, country string) (map[string]time.Time, error) {
	f, err := os.Open(config.SourcePath(cfg, country, fileFirstPurchases))
	if os.IsNotExist(err) {
		return map[string]time.Time{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open first-purchase extract: %w", err)
	}
	defer f.Close()
	return source.ReadFirstPurchases(f)
}

func readCodeNames(cfg *config.AppConfig, country string) (map[string]string, error) {
	f, err := os.Open(config.SourcePath(cfg, country, fileCodeNames))
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open group-code workbook: %w", err)
	}
	defer f.Close()
	return source.ReadCodeNames(f)
}
