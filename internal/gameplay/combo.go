package gameplay

// stepCombo adds hits to the combo, or breaks it when anything broke.
func (p *Player) stepCombo(row, hits, breaks int) {
	old, oldMiss := p.combo, p.missCombo
	if breaks > 0 {
		p.combo = 0
		p.missCombo += breaks
	} else {
		p.missCombo = 0
		p.combo += hits
	}
	if p.combo > p.maxCombo {
		p.maxCombo = p.combo
	}
	p.sink.OnCombo(ComboEvent{
		Row:          row,
		OldCombo:     old,
		OldMissCombo: oldMiss,
		Combo:        p.combo,
		MissCombo:    p.missCombo,
	})
}

// ResetCombo clears the combo, as when the life meter fails.
func (p *Player) ResetCombo() {
	if p.combo == 0 {
		return
	}
	old := p.combo
	p.combo = 0
	p.sink.OnCombo(ComboEvent{Row: p.songRow, OldCombo: old, OldMissCombo: p.missCombo, MissCombo: p.missCombo})
}
