package queue

import (
	"context"
	"encoding/json"
	"time"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vigie-app/vigie/backend/internal/report"
	"github.com/vigie-app/vigie/backend/internal/timing"
	"github.com/vigie-app/vigie/backend/internal/util"
	"github.com/vigie-app/vigie/backend/pkg/logger"
	"github.com/vigie-app/vigie/backend/pkg/relations"
)

// ProcessReportMessage builds the period report and uploads it to S3. A
// message without an explicit period falls back to REPORT_PERIOD_DAYS.
func ProcessReportMessage(
	ctx context.Context,
	s3Client *awss3.Client,
	conn *pgxpool.Pool,
	engine *relations.Engine,
	msg string,
) (err error) {
	start := time.Now()

	data := new(QueueReportMsg)
	if err = json.Unmarshal([]byte(msg), &data); err != nil {
		return err
	}

	periodDays := data.PeriodDays
	if periodDays <= 0 {
		periodDays = int(util.GetEnvNumeric("REPORT_PERIOD_DAYS", 7))
	}

	row, _, err := report.Generate(ctx, conn, s3Client, engine, periodDays)
	if err != nil {
		return err
	}

	if err := timing.Record(ctx, conn, timing.StageReport, 1, time.Since(start)); err != nil {
		logger.Warn("[Queue] Failed to record report timing", "err", err)
	}

	logger.Info("[Queue] Report processed", "id", row.ID, "period_days", periodDays)
	return nil
}
