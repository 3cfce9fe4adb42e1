// Package seed loads a small demo dataset through the real upload
// path, so seeded rows carry properly derived year and search text and
// the files land in the canonical hierarchy.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sipi-it/slms/internal/service"
	"github.com/sipi-it/slms/pkg/db/models"
	"github.com/sipi-it/slms/pkg/log"
	"github.com/sipi-it/slms/pkg/storage/pathgen"
)

type entry struct {
	desc   pathgen.Descriptor
	kind   pathgen.Kind
	params service.UploadParams
}

// Seeder writes demo documents through the DocumentService.
type Seeder struct {
	svc *service.DocumentService
	log log.LoggerService
}

func New(svc *service.DocumentService, logger log.LoggerService) *Seeder {
	return &Seeder{svc: svc, log: logger.Named("seed")}
}

// Run uploads every demo entry. Already-existing paths overwrite
// last-writer-wins, record creation then fails on the unique file_path
// and the entry is skipped.
func (s *Seeder) Run(ctx context.Context) error {
	seeded := 0
	for _, e := range demoEntries() {
		doc, err := s.svc.Upload(ctx, e.desc, e.kind, e.params)
		if err != nil {
			s.log.Warn("Skipping seed entry %s: %v", e.params.FileName, err)
			continue
		}
		s.log.Info("Seeded %s as %s", doc.FilePath, doc.ID)
		seeded++
	}
	if seeded == 0 {
		return fmt.Errorf("no seed entries could be created")
	}
	return nil
}

func demoEntries() []entry {
	cse := pathgen.Descriptor{
		DeptCode: "85", DeptName: "Computer Science",
		Session: "2024-2025", Shift: "1st Shift",
	}
	electrical := pathgen.Descriptor{
		DeptCode: "67", DeptName: "Electrical Technology",
		Session: "2023-2024", Shift: "2nd Shift",
	}

	withOwner := func(d pathgen.Descriptor, name, id string) pathgen.Descriptor {
		d.OwnerName = name
		d.OwnerID = id
		return d
	}

	params := func(name, desc string, tags []string, docType, srcType string, uploaded time.Time, body string) service.UploadParams {
		return service.UploadParams{
			Reader:       strings.NewReader(body),
			FileName:     name,
			Description:  desc,
			Tags:         tags,
			DocumentType: docType,
			SourceType:   srcType,
			UploadDate:   uploaded,
		}
	}

	return []entry{
		{
			desc: withOwner(cse, "Md Mahadi", "SIPI-889900"),
			kind: pathgen.KindStudent,
			params: params("Transcript.PDF", "Final semester transcript",
				[]string{"2024", "final"},
				models.DocumentTypeStudent, models.SourceTypeStudent,
				time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
				"demo transcript payload"),
		},
		{
			desc: withOwner(cse, "Nusrat Jahan", "SIPI-889912"),
			kind: pathgen.KindStudent,
			params: params("Admission Form.pdf", "Signed admission form",
				[]string{"admission", "2024-2025"},
				models.DocumentTypeAdmission, models.SourceTypeAdmission,
				time.Date(2024, 9, 2, 9, 30, 0, 0, time.UTC),
				"demo admission payload"),
		},
		{
			desc: withOwner(electrical, "Abdul Karim", "SIPI-771204"),
			kind: pathgen.KindTeacher,
			params: params("NID Copy.jpg", "National ID copy",
				[]string{"identity"},
				models.DocumentTypeTeacher, models.SourceTypeTeacher,
				time.Date(2024, 1, 18, 14, 45, 0, 0, time.UTC),
				"demo id payload"),
		},
		{
			desc: withOwner(electrical, "Dept Office", "SIPI-DEPT-67"),
			kind: pathgen.KindDepartmental,
			params: params("Class Routine 2024.xlsx", "Published class routine",
				[]string{"routine", "2024"},
				models.DocumentTypeDepartmental, models.SourceTypeDepartment,
				time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
				"demo routine payload"),
		},
	}
}
