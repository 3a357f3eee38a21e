package vercheckerr

var (
	// ErrAssertionsFailed indicates that at least one evaluated assertion did not hold.
	ErrAssertionsFailed = NewExpectedErr("one or more version assertions failed")

	// ErrFixtureOutOfDate indicates that the assertions generated from the advisories differ from the stored fixture.
	ErrFixtureOutOfDate = NewExpectedErr("assertion fixture is out of date")
)
