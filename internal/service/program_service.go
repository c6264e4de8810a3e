package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/cpeacock1649-gif/layer-builder/internal/config"
	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
	"github.com/cpeacock1649-gif/layer-builder/internal/parser"
	"github.com/cpeacock1649-gif/layer-builder/internal/port"
	progvalidator "github.com/cpeacock1649-gif/layer-builder/internal/validator/program"
)

// ImportFile is one uploaded document in an import batch.
type ImportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImportInput is the DTO for document import requests. Debug adds parse
// trace output to the per-document results without changing what is parsed.
type ImportInput struct {
	AccountID  uuid.UUID
	UploadedBy uuid.UUID
	Files      []ImportFile
	Debug      bool
}

// SpreadsheetImportResult is the outcome of a spreadsheet import batch.
type SpreadsheetImportResult struct {
	Documents []*parser.SpreadsheetResult `json:"documents"`
	Merged    *parser.MergedProgram       `json:"merged"`
	Program   *domain.Program             `json:"program"`
	Warnings  []string                    `json:"warnings"`
}

// TextImportResult is the outcome of a PDF import batch.
type TextImportResult struct {
	Documents []*parser.TextResult  `json:"documents"`
	Merged    *parser.MergedProgram `json:"merged"`
	Program   *domain.Program       `json:"program"`
	Warnings  []string              `json:"warnings"`
}

// ProgramService owns the assembled program of each account: importing
// documents into it, manual edits, and reads.
type ProgramService interface {
	GetProgram(ctx context.Context, accountID uuid.UUID) (*domain.Program, error)
	SaveProgram(ctx context.Context, accountID uuid.UUID, layers []domain.Layer) (*domain.Program, []string, error)
	ClearProgram(ctx context.Context, accountID uuid.UUID) error
	ImportSpreadsheets(ctx context.Context, input ImportInput) (*SpreadsheetImportResult, error)
	ImportTextDocuments(ctx context.Context, input ImportInput) (*TextImportResult, error)
	ListFiles(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]domain.FileMeta, int, error)
}

type programService struct {
	accountRepo port.AccountRepository
	programRepo port.ProgramRepository
	fileRepo    port.FileMetaRepository
	storage     port.ObjectStorage
	extractor   port.TextExtractor
	rules       *progvalidator.Registry
	s3cfg       *config.S3Config
	importCfg   *config.ImportConfig
}

// NewProgramService creates a new ProgramService implementation.
func NewProgramService(
	accountRepo port.AccountRepository,
	programRepo port.ProgramRepository,
	fileRepo port.FileMetaRepository,
	storage port.ObjectStorage,
	extractor port.TextExtractor,
	rules *progvalidator.Registry,
	s3cfg *config.S3Config,
	importCfg *config.ImportConfig,
) ProgramService {
	return &programService{
		accountRepo: accountRepo,
		programRepo: programRepo,
		fileRepo:    fileRepo,
		storage:     storage,
		extractor:   extractor,
		rules:       rules,
		s3cfg:       s3cfg,
		importCfg:   importCfg,
	}
}

func (s *programService) GetProgram(ctx context.Context, accountID uuid.UUID) (*domain.Program, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	record, err := s.programRepo.GetByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Program{Account: account.Name, Layers: []domain.Layer{}}, nil
		}
		return nil, err
	}

	var prog domain.Program
	if err := json.Unmarshal(record.ProgramData, &prog); err != nil {
		return nil, fmt.Errorf("programService.GetProgram: unmarshaling program: %w", err)
	}
	prog.Account = account.Name
	return &prog, nil
}

// SaveProgram replaces the account's program with the given layers, e.g.
// after a manual edit. Validation findings come back as warnings; they
// never block the save.
func (s *programService) SaveProgram(ctx context.Context, accountID uuid.UUID, layers []domain.Layer) (*domain.Program, []string, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}

	domain.SortLayers(layers)
	prog := &domain.Program{Account: account.Name, Layers: layers}
	warnings := s.validate(prog)

	if err := s.persist(ctx, accountID, prog); err != nil {
		return nil, nil, err
	}
	return prog, warnings, nil
}

func (s *programService) ClearProgram(ctx context.Context, accountID uuid.UUID) error {
	log.Printf("programService.ClearProgram: clearing program for account %s", accountID)
	return s.programRepo.DeleteByAccount(ctx, accountID)
}

// ImportSpreadsheets parses a batch of placement spreadsheets in parallel,
// merges them into one structure, folds the result into the account's
// stored program, and archives the source documents.
func (s *programService) ImportSpreadsheets(ctx context.Context, input ImportInput) (*SpreadsheetImportResult, error) {
	if len(input.Files) == 0 {
		return nil, fmt.Errorf("programService.ImportSpreadsheets: no files: %w", domain.ErrInvalidInput)
	}
	if len(input.Files) > s.importCfg.MaxSpreadsheets {
		return nil, domain.ErrTooManyDocuments
	}
	if err := s.checkFiles(input.Files, domain.FileTypeXLSX); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	results := make([]*parser.SpreadsheetResult, len(input.Files))
	s.parallel(len(input.Files), func(i int) {
		results[i] = parser.ParseSpreadsheetProgram(input.Files[i].Data, input.Files[i].Filename, input.Debug)
	})

	merged := parser.MergeSpreadsheetPrograms(results)
	log.Printf("programService.ImportSpreadsheets: account %s: %d/%d documents parsed, %d layers",
		input.AccountID, merged.DocumentsProcessed, len(input.Files), len(merged.Layers))

	prog, err := s.foldIntoProgram(ctx, input.AccountID, account.Name, merged.Layers)
	if err != nil {
		return nil, err
	}

	var warnings []string
	for _, res := range results {
		warnings = append(warnings, res.Warnings...)
	}
	warnings = append(warnings, s.validate(prog)...)

	s.archive(ctx, input, func(i int) (bool, string) {
		return results[i].Success, results[i].Error
	})

	return &SpreadsheetImportResult{
		Documents: results,
		Merged:    merged,
		Program:   prog,
		Warnings:  warnings,
	}, nil
}

// ImportTextDocuments parses a batch of quote/binder/policy PDFs in
// parallel and reconciles them into the account's stored program.
func (s *programService) ImportTextDocuments(ctx context.Context, input ImportInput) (*TextImportResult, error) {
	if len(input.Files) == 0 {
		return nil, fmt.Errorf("programService.ImportTextDocuments: no files: %w", domain.ErrInvalidInput)
	}
	if len(input.Files) > s.importCfg.MaxPDFs {
		return nil, domain.ErrTooManyDocuments
	}
	if err := s.checkFiles(input.Files, domain.FileTypePDF); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	results := make([]*parser.TextResult, len(input.Files))
	s.parallel(len(input.Files), func(i int) {
		results[i] = parser.ParseTextualProgram(input.Files[i].Data, input.Files[i].Filename, s.extractor.ExtractText)
	})

	merged := parser.MergeTextualDocuments(results)
	log.Printf("programService.ImportTextDocuments: account %s: %d/%d documents parsed, %d layers",
		input.AccountID, merged.DocumentsProcessed, len(input.Files), len(merged.Layers))

	prog, err := s.foldIntoProgram(ctx, input.AccountID, account.Name, merged.Layers)
	if err != nil {
		return nil, err
	}

	warnings := s.validate(prog)

	s.archive(ctx, input, func(i int) (bool, string) {
		return results[i].Success, results[i].Error
	})

	return &TextImportResult{
		Documents: results,
		Merged:    merged,
		Program:   prog,
		Warnings:  warnings,
	}, nil
}

// ListFiles returns the import history for the account.
func (s *programService) ListFiles(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]domain.FileMeta, int, error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, 0, err
	}
	return s.fileRepo.ListByAccount(ctx, accountID, offset, limit)
}

// checkFiles validates extensions and sizes before any parsing starts, so a
// bad batch fails whole rather than half-imported.
func (s *programService) checkFiles(files []ImportFile, want domain.FileType) error {
	maxBytes := s.s3cfg.MaxFileSizeMB * 1024 * 1024
	for i := range files {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(files[i].Filename), "."))
		fileType, ok := domain.AllowedExtensions[ext]
		if !ok || fileType != want {
			return fmt.Errorf("%s: %w", files[i].Filename, domain.ErrUnsupportedFileType)
		}
		if int64(len(files[i].Data)) > maxBytes {
			return fmt.Errorf("%s: %w", files[i].Filename, domain.ErrFileTooLarge)
		}
	}
	return nil
}

// parallel runs fn(0..n-1) across a bounded pool of goroutines.
func (s *programService) parallel(n int, fn func(i int)) {
	concurrency := s.importCfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{} // acquire
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }() // release
			fn(idx)
		}(i)
	}
	wg.Wait()
}

// foldIntoProgram merges freshly imported layers into the account's stored
// program and persists the result. The stored layers go first so an
// existing placement keeps its position when a re-uploaded document repeats
// it.
func (s *programService) foldIntoProgram(ctx context.Context, accountID uuid.UUID, accountName string, imported []domain.Layer) (*domain.Program, error) {
	existing := []domain.Layer{}
	record, err := s.programRepo.GetByAccount(ctx, accountID)
	if err == nil {
		var stored domain.Program
		if err := json.Unmarshal(record.ProgramData, &stored); err != nil {
			return nil, fmt.Errorf("programService.foldIntoProgram: unmarshaling stored program: %w", err)
		}
		existing = stored.Layers
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	combined := parser.MergeSpreadsheetPrograms([]*parser.SpreadsheetResult{
		{Success: true, Layers: existing},
		{Success: true, Layers: imported},
	})

	prog := &domain.Program{Account: accountName, Layers: combined.Layers}
	if err := s.persist(ctx, accountID, prog); err != nil {
		return nil, err
	}
	return prog, nil
}

func (s *programService) persist(ctx context.Context, accountID uuid.UUID, prog *domain.Program) error {
	data, err := json.Marshal(prog)
	if err != nil {
		return fmt.Errorf("programService.persist: marshaling program: %w", err)
	}
	record := &domain.ProgramRecord{
		AccountID:   accountID,
		ProgramData: data,
	}
	if err := s.programRepo.Save(ctx, record); err != nil {
		return err
	}
	return nil
}

func (s *programService) validate(prog *domain.Program) []string {
	var warnings []string
	for _, f := range s.rules.Validate(prog) {
		warnings = append(warnings, f.Message)
	}
	return warnings
}

// archive stores the source documents in S3 and records file metadata.
// Archival failures are logged, not returned: the parse already succeeded
// and the program is saved, losing the audit copy must not roll that back.
func (s *programService) archive(ctx context.Context, input ImportInput, outcome func(i int) (bool, string)) {
	for i := range input.Files {
		file := input.Files[i]
		parsed, parseErr := outcome(i)

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
		fileType := domain.AllowedExtensions[ext]
		fileID := uuid.New()
		s3Key := fmt.Sprintf("accounts/%s/files/%s/%s", input.AccountID, fileID, file.Filename)

		status := domain.FileStatusStored
		if _, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.s3cfg.Bucket,
			Key:         s3Key,
			Body:        bytes.NewReader(file.Data),
			ContentType: file.ContentType,
			Size:        int64(len(file.Data)),
		}); err != nil {
			log.Printf("programService.archive: S3 upload failed for %s: %v", file.Filename, err)
			status = domain.FileStatusFailed
		}

		meta := &domain.FileMeta{
			ID:           fileID,
			AccountID:    input.AccountID,
			UploadedBy:   input.UploadedBy,
			FileName:     fileID.String() + "." + ext,
			OriginalName: file.Filename,
			FileType:     fileType,
			FileSize:     int64(len(file.Data)),
			S3Bucket:     s.s3cfg.Bucket,
			S3Key:        s3Key,
			ContentType:  file.ContentType,
			Status:       status,
			ParseSuccess: parsed,
			ParseError:   parseErr,
		}
		if err := s.fileRepo.Create(ctx, meta); err != nil {
			log.Printf("programService.archive: recording file metadata for %s: %v", file.Filename, err)
		}
	}
}
