package schema

import (
	"strings"
	"testing"
)

const validDoc = `
type Account @entity {
  id: ID!
  balance: BigInt!
  transfers: [Transfer!]! @derivedFrom(field: "account")
}

type Transfer @entity {
  id: ID!
  account: Account!
  amount: BigDecimal!
}
`

func TestValidateAcceptsWellFormedSchema(t *testing.T) {
	doc, err := Parse(strings.NewReader(validDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sc, err := Validate(doc)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(sc.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", sc.Warnings)
	}
	acct := sc.Entities["Account"]
	if acct.IDField() == nil {
		t.Fatalf("expected Account to have an id field")
	}
	transfers := acct.Field("transfers")
	if transfers == nil || transfers.TargetEntity != "Transfer" {
		t.Fatalf("expected derived transfers field targeting Transfer")
	}
}

func TestValidateRejectsMissingID(t *testing.T) {
	const doc = `
type Account @entity {
  balance: BigInt!
}
`
	d, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Validate(d); err == nil {
		t.Fatalf("expected missing-id validation error")
	}
}

func TestValidateRejectsNonListDerivedFrom(t *testing.T) {
	const doc = `
type Account @entity {
  id: ID!
  lastTransfer: Transfer @derivedFrom(field: "account")
}

type Transfer @entity {
  id: ID!
  account: Account!
}
`
	d, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Validate(d); err == nil {
		t.Fatalf("expected non-list derivedFrom to be rejected")
	}
}

func TestValidateTimeseriesRequiresInt64IDAndTimestamp(t *testing.T) {
	const doc = `
type DailyStat @entity(timeseries: true) {
  id: ID!
  value: BigDecimal!
}
`
	d, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Validate(d); err == nil {
		t.Fatalf("expected timeseries schema missing int64 id + timestamp to be rejected")
	}

	const ok = `
type DailyStat @entity(timeseries: true) {
  id: Int!
  timestamp: Timestamp!
  value: BigDecimal!
}
`
	d2, err := Parse(strings.NewReader(ok))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sc, err := Validate(d2)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if sc.Entities["DailyStat"].TimestampField() == nil {
		t.Fatalf("expected timestamp field to resolve")
	}
}

func TestValidateWarnsOnBadDerivedFromTarget(t *testing.T) {
	const doc = `
type Account @entity {
  id: ID!
  transfers: [Transfer!]! @derivedFrom(field: "nonexistentField")
}

type Transfer @entity {
  id: ID!
}
`
	d, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sc, err := Validate(d)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(sc.Warnings) == 0 {
		t.Fatalf("expected a warning about the missing back-pointer field")
	}
}

func TestValidateRejectsUndefinedReference(t *testing.T) {
	const doc = `
type Account @entity {
  id: ID!
  transfers: [Ghost!]! @derivedFrom(field: "account")
}
`
	d, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Validate(d); err == nil {
		t.Fatalf("expected undefined-type reference to be rejected")
	}
}

func TestUnknownScalarPromotedToString(t *testing.T) {
	const doc = `
type Account @entity {
  id: ID!
  weird: SomeUnknownScalar
}
`
	d, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sc, err := Validate(d)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if sc.Entities["Account"].Field("weird").Type != ScalarString {
		t.Fatalf("expected unknown scalar to be promoted to String")
	}
}

func TestNonEntityObjectTypesAreIgnored(t *testing.T) {
	const doc = `
type Account @entity {
  id: ID!
}

type Metadata {
  note: String
}
`
	d, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(d.Entities) != 1 {
		t.Fatalf("expected only the @entity-annotated type to be collected, got %d", len(d.Entities))
	}
}
