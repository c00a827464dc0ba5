// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package database

import (
	"context"
	"fmt"

	"github.com/collegedeck/collegedeck/internal/logging"
	"github.com/collegedeck/collegedeck/internal/models"
)

// demoCatalog is a small college catalog for local development and demos.
// UnitIDs are real IPEDS identifiers; figures are approximate.
var demoCatalog = []models.College{
	{UnitID: 100654, InstitutionName: "Alabama A & M University", StateName: "Alabama", PercentAdmitted: 68, TuitionAndFees: 10024},
	{UnitID: 100751, InstitutionName: "The University of Alabama", StateName: "Alabama", PercentAdmitted: 80, TuitionAndFees: 11620},
	{UnitID: 104179, InstitutionName: "University of Arizona", StateName: "Arizona", PercentAdmitted: 87, TuitionAndFees: 13277},
	{UnitID: 110404, InstitutionName: "California Institute of Technology", StateName: "California", PercentAdmitted: 4, TuitionAndFees: 60864},
	{UnitID: 110635, InstitutionName: "University of California-Berkeley", StateName: "California", PercentAdmitted: 12, TuitionAndFees: 15891},
	{UnitID: 110662, InstitutionName: "University of California-Los Angeles", StateName: "California", PercentAdmitted: 9, TuitionAndFees: 13752},
	{UnitID: 126614, InstitutionName: "University of Colorado Boulder", StateName: "Colorado", PercentAdmitted: 81, TuitionAndFees: 14002},
	{UnitID: 130794, InstitutionName: "Yale University", StateName: "Connecticut", PercentAdmitted: 5, TuitionAndFees: 64700},
	{UnitID: 134130, InstitutionName: "University of Florida", StateName: "Florida", PercentAdmitted: 24, TuitionAndFees: 6381},
	{UnitID: 139658, InstitutionName: "Emory University", StateName: "Georgia", PercentAdmitted: 11, TuitionAndFees: 57948},
	{UnitID: 139755, InstitutionName: "Georgia Institute of Technology", StateName: "Georgia", PercentAdmitted: 17, TuitionAndFees: 11764},
	{UnitID: 144050, InstitutionName: "University of Chicago", StateName: "Illinois", PercentAdmitted: 5, TuitionAndFees: 64260},
	{UnitID: 145637, InstitutionName: "University of Illinois Urbana-Champaign", StateName: "Illinois", PercentAdmitted: 45, TuitionAndFees: 17138},
	{UnitID: 151351, InstitutionName: "Indiana University-Bloomington", StateName: "Indiana", PercentAdmitted: 82, TuitionAndFees: 11790},
	{UnitID: 163286, InstitutionName: "University of Maryland-College Park", StateName: "Maryland", PercentAdmitted: 45, TuitionAndFees: 11233},
	{UnitID: 164988, InstitutionName: "Boston University", StateName: "Massachusetts", PercentAdmitted: 14, TuitionAndFees: 63798},
	{UnitID: 166027, InstitutionName: "Harvard University", StateName: "Massachusetts", PercentAdmitted: 3, TuitionAndFees: 57261},
	{UnitID: 166683, InstitutionName: "Massachusetts Institute of Technology", StateName: "Massachusetts", PercentAdmitted: 4, TuitionAndFees: 57986},
	{UnitID: 170976, InstitutionName: "University of Michigan-Ann Arbor", StateName: "Michigan", PercentAdmitted: 18, TuitionAndFees: 17736},
	{UnitID: 179867, InstitutionName: "Washington University in St Louis", StateName: "Missouri", PercentAdmitted: 12, TuitionAndFees: 60590},
	{UnitID: 186131, InstitutionName: "Princeton University", StateName: "New Jersey", PercentAdmitted: 6, TuitionAndFees: 57410},
	{UnitID: 190150, InstitutionName: "Columbia University in the City of New York", StateName: "New York", PercentAdmitted: 4, TuitionAndFees: 65524},
	{UnitID: 190415, InstitutionName: "Cornell University", StateName: "New York", PercentAdmitted: 7, TuitionAndFees: 63200},
	{UnitID: 193900, InstitutionName: "New York University", StateName: "New York", PercentAdmitted: 13, TuitionAndFees: 58168},
	{UnitID: 198419, InstitutionName: "Duke University", StateName: "North Carolina", PercentAdmitted: 6, TuitionAndFees: 62688},
	{UnitID: 199120, InstitutionName: "University of North Carolina at Chapel Hill", StateName: "North Carolina", PercentAdmitted: 17, TuitionAndFees: 8998},
	{UnitID: 201645, InstitutionName: "Case Western Reserve University", StateName: "Ohio", PercentAdmitted: 27, TuitionAndFees: 62234},
	{UnitID: 204796, InstitutionName: "Ohio State University-Main Campus", StateName: "Ohio", PercentAdmitted: 53, TuitionAndFees: 12485},
	{UnitID: 209551, InstitutionName: "University of Oregon", StateName: "Oregon", PercentAdmitted: 86, TuitionAndFees: 15669},
	{UnitID: 211440, InstitutionName: "Carnegie Mellon University", StateName: "Pennsylvania", PercentAdmitted: 11, TuitionAndFees: 61344},
	{UnitID: 215062, InstitutionName: "University of Pennsylvania", StateName: "Pennsylvania", PercentAdmitted: 7, TuitionAndFees: 63452},
	{UnitID: 217156, InstitutionName: "Brown University", StateName: "Rhode Island", PercentAdmitted: 5, TuitionAndFees: 65146},
	{UnitID: 221999, InstitutionName: "Vanderbilt University", StateName: "Tennessee", PercentAdmitted: 7, TuitionAndFees: 60348},
	{UnitID: 227757, InstitutionName: "Rice University", StateName: "Texas", PercentAdmitted: 9, TuitionAndFees: 54960},
	{UnitID: 228778, InstitutionName: "The University of Texas at Austin", StateName: "Texas", PercentAdmitted: 31, TuitionAndFees: 11698},
	{UnitID: 234076, InstitutionName: "University of Virginia-Main Campus", StateName: "Virginia", PercentAdmitted: 19, TuitionAndFees: 20342},
	{UnitID: 236948, InstitutionName: "University of Washington-Seattle Campus", StateName: "Washington", PercentAdmitted: 48, TuitionAndFees: 12242},
	{UnitID: 240444, InstitutionName: "University of Wisconsin-Madison", StateName: "Wisconsin", PercentAdmitted: 49, TuitionAndFees: 11205},
	{UnitID: 243744, InstitutionName: "Stanford University", StateName: "California", PercentAdmitted: 4, TuitionAndFees: 61731},
	{UnitID: 147767, InstitutionName: "Northwestern University", StateName: "Illinois", PercentAdmitted: 7, TuitionAndFees: 63468},
}

// SeedDemoData loads the demo catalog when the colleges table is empty.
// Safe to call on every startup; existing catalogs are left untouched.
func (db *DB) SeedDemoData(ctx context.Context) error {
	count, err := db.CountColleges(ctx)
	if err != nil {
		return fmt.Errorf("failed to check catalog size: %w", err)
	}
	if count > 0 {
		logging.Debug().Int64("colleges", count).Msg("Catalog already populated, skipping demo seed")
		return nil
	}

	for i := range demoCatalog {
		if err := db.UpsertCollege(ctx, &demoCatalog[i]); err != nil {
			return fmt.Errorf("failed to seed college %d: %w", demoCatalog[i].UnitID, err)
		}
	}

	logging.Info().Int("colleges", len(demoCatalog)).Msg("Seeded demo catalog")
	return nil
}
