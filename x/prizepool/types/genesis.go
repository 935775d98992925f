package types

// GenesisState is the module's genesis export/import shape, grounded on the
// Config-as-Params idiom used across the corpus' keeper.GetParams callers.
type GenesisState struct {
	Config     Config      `json:"config"`
	Round      Round       `json:"round"`
	PoolState  PoolState   `json:"pool_state"`
	Validators []Validator `json:"validators"`
}

// Validate runs Config.Validate plus the Round/PoolState sanity checks
// required before a chain can start from this genesis state.
func (gs GenesisState) Validate() error {
	if err := gs.Config.Validate(); err != nil {
		return err
	}
	if uint64(len(gs.Validators)) != gs.Config.NumValidators {
		return ErrPreconditionViolated.Wrap("config.num_validators must match len(validators)")
	}
	if gs.Round.Duration <= 0 {
		return ErrInvalidAmount.Wrap("round duration must be positive")
	}
	if gs.Round.TicketPrice.IsNil() || !gs.Round.TicketPrice.IsPositive() {
		return ErrInvalidAmount.Wrap("ticket price must be positive")
	}
	ud := gs.Round.UnclaimedDistribution
	if !ud.ReservePercentage.IsValid() || !ud.PropagatePercentage.IsValid() ||
		!ud.ReservePercentage.Add(ud.PropagatePercentage).SumsTo100Percent() {
		return ErrPreconditionViolated.Wrap("reserve and propagate percentages must sum to the common divisor")
	}
	return nil
}
