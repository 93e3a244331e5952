package state

import "github.com/kaslund/statjobs/app/discovery"

// EfficiencyReport compares detail-candidate counts between two discovery
// runs over the same store. ReductionRatio is 1 - run2/run1 and only
// meaningful when run 1 selected anything.
type EfficiencyReport struct {
	Run1Candidates int
	Run2Candidates int
	ReductionRatio float64
	ReductionKnown bool
}

// MeasureIncrementalEfficiency replays two discovery runs (select, then
// upsert, per batch) and reports how much the second run shrank.
// fingerprintIDsRun1 marks listings whose detail fetch succeeded in run 1.
func MeasureIncrementalEfficiency(store *Store, run1, run2 []discovery.ListingSummary,
	seenAtRun1, seenAtRun2 string, fingerprintIDsRun1 []string, full bool) (EfficiencyReport, error) {

	cand1, err := store.SelectDetailCandidates(run1, full)
	if err != nil {
		return EfficiencyReport{}, err
	}
	if _, err := store.UpsertFromSummaries(run1, seenAtRun1); err != nil {
		return EfficiencyReport{}, err
	}
	for _, id := range fingerprintIDsRun1 {
		if err := store.UpdateDetailFingerprint(id, "fp-run1"); err != nil {
			return EfficiencyReport{}, err
		}
	}

	cand2, err := store.SelectDetailCandidates(run2, full)
	if err != nil {
		return EfficiencyReport{}, err
	}
	if _, err := store.UpsertFromSummaries(run2, seenAtRun2); err != nil {
		return EfficiencyReport{}, err
	}

	report := EfficiencyReport{
		Run1Candidates: len(cand1),
		Run2Candidates: len(cand2),
	}
	if report.Run1Candidates > 0 {
		report.ReductionRatio = 1.0 - float64(report.Run2Candidates)/float64(report.Run1Candidates)
		report.ReductionKnown = true
	}
	return report, nil
}
