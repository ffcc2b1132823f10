package source

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DealerDoc is a dealer document from the source store.
type DealerDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	PayeeNumber string             `bson:"payeeNumber"`
	Name        string             `bson:"name"`
	Address     string             `bson:"address"`
	City        string             `bson:"city"`
	State       string             `bson:"state"`
	Zip         string             `bson:"zip"`
	Phone       string             `bson:"phone"`
}

// AgreementDoc is a raw agreement revision from the source store.
// Multiple revisions per AgreementID may exist; the synchronizer keeps
// only the one with the most recent status change.
type AgreementDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	AgreementID  string             `bson:"agreementId"`
	DealerNumber string             `bson:"dealerNumber"`
	Status       string             `bson:"status"`
	Hash         string             `bson:"hash"`
	HolderName   string             `bson:"holderName"`
	PlanCode     string             `bson:"planCode"`
	VIN          string             `bson:"vin"`

	EffectiveDate  time.Time `bson:"effectiveDate"`
	ExpirationDate time.Time `bson:"expirationDate"`

	// Ranked status-change timestamps; the highest-ranked present value
	// (4 > 3 > 2 > 1) is the effective status change of the revision.
	StatusChangeDate  time.Time `bson:"statusChangeDate"`
	StatusChangeDate2 time.Time `bson:"statusChangeDate2"`
	StatusChangeDate3 time.Time `bson:"statusChangeDate3"`
	StatusChangeDate4 time.Time `bson:"statusChangeDate4"`
}

// ClaimDoc is a claim document from the source store. Claims are
// change-tracked by their LastModified timestamp.
type ClaimDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ClaimID      string             `bson:"claimId"`
	AgreementID  string             `bson:"agreementId"`
	Status       string             `bson:"status"`
	TotalPaid    string             `bson:"totalPaid"`
	Odometer     int64              `bson:"odometer"`
	OpenDate     time.Time          `bson:"openDate"`
	CloseDate    time.Time          `bson:"closeDate"`
	LastModified time.Time          `bson:"lastModified"`
}

// SubclaimDoc is a subclaim document, change-tracked by content hash.
type SubclaimDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ClaimID    string             `bson:"claimId"`
	Hash       string             `bson:"hash"`
	Status     string             `bson:"status"`
	Complaint  string             `bson:"complaint"`
	TotalCost  string             `bson:"totalCost"`
	PayDate    time.Time          `bson:"payDate"`
	ModifiedAt time.Time          `bson:"modifiedAt"`
}

// SubclaimPartDoc is a subclaim part line item, change-tracked by content hash.
type SubclaimPartDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	SubclaimID  string             `bson:"subclaimId"`
	Hash        string             `bson:"hash"`
	PartNumber  string             `bson:"partNumber"`
	Description string             `bson:"description"`
	Quantity    int64              `bson:"quantity"`
	UnitPrice   string             `bson:"unitPrice"`
}

// SurchargePriceDoc is an option surcharge price document, change-tracked
// by content hash.
type SurchargePriceDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	OptionCode string             `bson:"optionCode"`
	PlanCode   string             `bson:"planCode"`
	Price      string             `bson:"price"`
	DealerCost string             `bson:"dealerCost"`
	Hash       string             `bson:"hash"`
}

// SyncKey returns the identity used for change tracking.
func (d AgreementDoc) SyncKey() string { return d.AgreementID }

// SyncHash returns the content hash used for change tracking.
func (d AgreementDoc) SyncHash() string { return d.Hash }

func (d SubclaimDoc) SyncKey() string  { return d.ID.Hex() }
func (d SubclaimDoc) SyncHash() string { return d.Hash }

func (d SubclaimPartDoc) SyncKey() string  { return d.ID.Hex() }
func (d SubclaimPartDoc) SyncHash() string { return d.Hash }

func (d SurchargePriceDoc) SyncKey() string  { return d.ID.Hex() }
func (d SurchargePriceDoc) SyncHash() string { return d.Hash }
