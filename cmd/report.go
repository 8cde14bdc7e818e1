package cmd

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	sim "github.com/survival-sim/survival-sim/sim"
)

// auditHeader matches the calibration study's audit table layout.
var auditHeader = []string{"Cohort ID", "Likelihood Weights", "Mortality Prob"}

// WriteAuditCSV exports the calibration audit table — one row per prior
// sample, with its cohort id and normalized likelihood weight — to fileName.
func WriteAuditCSV(engine *sim.Calibration, fileName string) {
	ids, weights, samples, err := engine.Audit()
	if err != nil {
		logrus.Fatalf("Audit table unavailable: %v", err)
	}

	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0777)
	if err != nil {
		logrus.Fatalf("Error creating file %s: %v", fileName, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.Fatalf("Error closing file %s: %v", fileName, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write(auditHeader); err != nil {
		logrus.Fatalf("Error writing header to file %s: %v", fileName, err)
	}
	for i := range ids {
		row := []string{
			strconv.Itoa(ids[i]),
			strconv.FormatFloat(weights[i], 'g', -1, 64),
			strconv.FormatFloat(samples[i], 'g', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			logrus.Fatalf("Error writing row %d to file %s: %v", i, fileName, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		logrus.Fatalf("Error flushing writer for file %s: %v", fileName, err)
	}

	logrus.Debugf("Successfully wrote audit table to '%s'", fileName)
}
