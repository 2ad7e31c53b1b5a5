package roster

// MergeLastClubGame replaces the record's snapshot wholesale. A nil snapshot means the run produced
// nothing for this player and the record is returned untouched.
func MergeLastClubGame(existing Record, snapshot *LastClubGame) Record {
	if snapshot == nil {
		return existing
	}

	copied := *snapshot
	updated := existing
	updated.LastClubGame = &copied
	return updated.markDirty(FieldLastClubGame)
}

// MergeExternalIDs writes the resolved team id. apiPlayerId is assigned by hand and only ever
// carried through, so passing nil for teamID leaves the record untouched.
func MergeExternalIDs(existing Record, teamID *int64) Record {
	if teamID == nil || *teamID <= 0 {
		return existing
	}
	if existing.APITeamID != nil && *existing.APITeamID == *teamID {
		return existing
	}

	id := *teamID
	updated := existing
	updated.APITeamID = &id
	return updated.markDirty(FieldAPITeamID)
}
