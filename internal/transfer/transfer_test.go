package transfer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/applytrack/applytrack/internal/dtos"
	"github.com/applytrack/applytrack/internal/models"
	"github.com/applytrack/applytrack/internal/services"
	"github.com/applytrack/applytrack/internal/testutil"
)

// seedUserData builds the scenario from the test plan: company C1, contact
// K1, application A1 (→C1, →K1) with notes "call back" and "follow up".
func seedUserData(t *testing.T, db *gorm.DB, userID uint) (company models.Company, contact models.Contact, app models.Application) {
	t.Helper()

	company = models.Company{UserID: userID, Name: "TechSolutions GmbH", Website: "https://tech.sol", Industry: "IT"}
	require.NoError(t, db.Create(&company).Error)

	contact = models.Contact{
		UserID:    userID,
		CompanyID: company.ID,
		FirstName: "Erika",
		LastName:  "Musterfrau",
		Email:     "e.musterfrau@tech.sol",
	}
	require.NoError(t, db.Create(&contact).Error)

	app = models.Application{
		UserID:    userID,
		JobTitle:  "Backend Engineer",
		CompanyID: company.ID,
		ContactID: &contact.ID,
		Status:    models.StatusApplied,
	}
	require.NoError(t, db.Create(&app).Error)

	for _, text := range []string{"call back", "follow up"} {
		require.NoError(t, db.Create(&models.Note{ApplicationID: app.ID, Text: text}).Error)
	}
	return company, contact, app
}

func stripTimestamps(doc Document) Document {
	for i := range doc.Applications {
		doc.Applications[i].CreatedAt = time.Time{}
	}
	for i := range doc.Notes {
		doc.Notes[i].CreatedAt = time.Time{}
	}
	return doc
}

func TestExportEmptyUser(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.CreateUser(t, db, "alice", "alice@example.com")

	var buf bytes.Buffer
	doc, err := Export(db, user.ID, &buf)
	require.NoError(t, err)

	assert.Empty(t, doc.Companies)
	assert.Empty(t, doc.Contacts)
	assert.Empty(t, doc.Applications)
	assert.Empty(t, doc.Notes)

	// The file must contain all four collections as empty arrays, not null.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{"companies", "contacts", "applications", "notes"} {
		assert.JSONEq(t, "[]", string(raw[key]), key)
	}
}

func TestExportScopedToUserAndOrdered(t *testing.T) {
	db := testutil.OpenTestDB(t)
	alice := testutil.CreateUser(t, db, "alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob", "bob@example.com")

	seedUserData(t, db, alice.ID)
	seedUserData(t, db, bob.ID)

	var buf bytes.Buffer
	doc, err := Export(db, alice.ID, &buf)
	require.NoError(t, err)

	require.Len(t, doc.Companies, 1)
	require.Len(t, doc.Contacts, 1)
	require.Len(t, doc.Applications, 1)
	require.Len(t, doc.Notes, 2)
	assert.Less(t, doc.Notes[0].ID, doc.Notes[1].ID)
	assert.Equal(t, "call back", doc.Notes[0].Text)
	assert.Equal(t, "follow up", doc.Notes[1].Text)
}

func TestImportRoundTrip(t *testing.T) {
	source := testutil.OpenTestDB(t)
	alice := testutil.CreateUser(t, source, "alice", "alice@example.com")
	company, contact, app := seedUserData(t, source, alice.ID)

	var buf bytes.Buffer
	_, err := Export(source, alice.ID, &buf)
	require.NoError(t, err)

	// Fresh, empty store.
	target := testutil.OpenTestDB(t)
	targetUser := testutil.CreateUser(t, target, "alice", "alice@example.com")

	report, err := Import(target, targetUser.ID, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, Counts{Created: 1}, report.Companies)
	assert.Equal(t, Counts{Created: 1}, report.Contacts)
	assert.Equal(t, Counts{Created: 1}, report.Applications)
	assert.Equal(t, Counts{Created: 2}, report.Notes)

	// IDs and relationships survive the round trip.
	var importedApp models.Application
	require.NoError(t, target.First(&importedApp, app.ID).Error)
	assert.Equal(t, company.ID, importedApp.CompanyID)
	require.NotNil(t, importedApp.ContactID)
	assert.Equal(t, contact.ID, *importedApp.ContactID)
	assert.Equal(t, targetUser.ID, importedApp.UserID)

	// The re-export of the target equals the original document, timestamps
	// aside.
	original, err := ParseDocument(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	reExported, err := BuildDocument(target, targetUser.ID)
	require.NoError(t, err)
	assert.Equal(t, stripTimestamps(*original), stripTimestamps(*reExported))
}

func TestImportIdempotence(t *testing.T) {
	db := testutil.OpenTestDB(t)
	alice := testutil.CreateUser(t, db, "alice", "alice@example.com")
	seedUserData(t, db, alice.ID)

	var buf bytes.Buffer
	_, err := Export(db, alice.ID, &buf)
	require.NoError(t, err)

	first, err := Import(db, alice.ID, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	second, err := Import(db, alice.ID, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	// Everything already existed, so run one updates what run zero created.
	assert.Equal(t, Counts{Updated: 1}, first.Companies)
	assert.Equal(t, first, second)

	var companyCount, noteCount int64
	require.NoError(t, db.Model(&models.Company{}).Count(&companyCount).Error)
	require.NoError(t, db.Model(&models.Note{}).Count(&noteCount).Error)
	assert.EqualValues(t, 1, companyCount)
	assert.EqualValues(t, 2, noteCount)
}

func TestImportForcesOwnership(t *testing.T) {
	source := testutil.OpenTestDB(t)
	alice := testutil.CreateUser(t, source, "alice", "alice@example.com")
	seedUserData(t, source, alice.ID)

	var buf bytes.Buffer
	_, err := Export(source, alice.ID, &buf)
	require.NoError(t, err)

	target := testutil.OpenTestDB(t)
	testutil.CreateUser(t, target, "alice", "alice@example.com")
	bob := testutil.CreateUser(t, target, "bob", "bob@example.com")

	// Bob imports Alice's document; every record lands under Bob.
	report, err := Import(target, bob.ID, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, report.Skipped)

	var companies []models.Company
	require.NoError(t, target.Find(&companies).Error)
	require.Len(t, companies, 1)
	assert.Equal(t, bob.ID, companies[0].UserID)
}

func TestImportRejectsCrossUserIDConflict(t *testing.T) {
	db := testutil.OpenTestDB(t)
	alice := testutil.CreateUser(t, db, "alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob", "bob@example.com")
	company, _, _ := seedUserData(t, db, alice.ID)

	doc := Document{
		Companies: []CompanyRecord{
			{ID: company.ID, Name: "Takeover Inc"},
		},
		Contacts:     []ContactRecord{},
		Applications: []ApplicationRecord{},
		Notes:        []NoteRecord{},
	}
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	report, err := Import(db, bob.ID, bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, Counts{}, report.Companies)
	require.Len(t, report.Skipped, 1)
	assert.Contains(t, report.Skipped[0], "companies[0]")
	// The error must not leak the existing record's content or owner.
	assert.NotContains(t, report.Skipped[0], "alice")
	assert.NotContains(t, report.Skipped[0], "TechSolutions")

	var check models.Company
	require.NoError(t, db.First(&check, company.ID).Error)
	assert.Equal(t, alice.ID, check.UserID)
	assert.Equal(t, "TechSolutions GmbH", check.Name)
}

func TestImportSkipsUnresolvedForeignKeys(t *testing.T) {
	db := testutil.OpenTestDB(t)
	alice := testutil.CreateUser(t, db, "alice", "alice@example.com")

	doc := Document{
		Companies: []CompanyRecord{{ID: 1, Name: "Acme Corp"}},
		Contacts: []ContactRecord{
			{ID: 1, CompanyID: 999, FirstName: "Lost", LastName: "Soul"},
			{ID: 2, CompanyID: 1, FirstName: "Erika", LastName: "Musterfrau"},
		},
		Applications: []ApplicationRecord{
			{ID: 1, JobTitle: "Backend Engineer", CompanyID: 1, Status: "DRAFT"},
			{ID: 2, JobTitle: "Ghost Role", CompanyID: 999, Status: "DRAFT"},
		},
		Notes: []NoteRecord{
			{ID: 1, ApplicationID: 1, Text: "ok"},
			{ID: 2, ApplicationID: 2, Text: "dangles with its application"},
		},
	}
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	report, err := Import(db, alice.ID, bytes.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, Counts{Created: 1}, report.Companies)
	assert.Equal(t, Counts{Created: 1}, report.Contacts)
	assert.Equal(t, Counts{Created: 1}, report.Applications)
	assert.Equal(t, Counts{Created: 1}, report.Notes)
	require.Len(t, report.Skipped, 3)
	assert.Contains(t, report.Skipped[0], "contacts[0]")
	assert.Contains(t, report.Skipped[1], "applications[1]")
	assert.Contains(t, report.Skipped[2], "notes[1]")
}

func TestImportRejectsMalformedDocument(t *testing.T) {
	db := testutil.OpenTestDB(t)
	alice := testutil.CreateUser(t, db, "alice", "alice@example.com")

	cases := map[string]string{
		"not json":           `{`,
		"missing collection": `{"companies": [], "contacts": [], "applications": []}`,
		"missing field":      `{"companies": [{"id": 1}], "contacts": [], "applications": [], "notes": []}`,
		"bad status":         `{"companies": [{"id": 1, "name": "A"}], "contacts": [], "applications": [{"id": 1, "job_title": "X", "company_id": 1, "status": "NONSENSE"}], "notes": []}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Import(db, alice.ID, strings.NewReader(body))
			require.Error(t, err)

			// Nothing may have been written.
			var count int64
			require.NoError(t, db.Model(&models.Company{}).Count(&count).Error)
			assert.Zero(t, count)
		})
	}
}

// Full scenario: export, import into a fresh store, then reconcile A1's
// notes down to a single edited note.
func TestExportImportReconcileScenario(t *testing.T) {
	source := testutil.OpenTestDB(t)
	alice := testutil.CreateUser(t, source, "alice", "alice@example.com")
	_, _, app := seedUserData(t, source, alice.ID)

	var buf bytes.Buffer
	doc, err := Export(source, alice.ID, &buf)
	require.NoError(t, err)
	require.Len(t, doc.Companies, 1)
	require.Len(t, doc.Contacts, 1)
	require.Len(t, doc.Applications, 1)
	require.Len(t, doc.Notes, 2)

	target := testutil.OpenTestDB(t)
	targetUser := testutil.CreateUser(t, target, "alice", "alice@example.com")
	report, err := Import(target, targetUser.ID, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, report.Skipped)

	n1 := doc.Notes[0].ID
	apps := services.NewApplicationService(target)
	updated, err := apps.Update(targetUser.ID, app.ID, &dtos.ApplicationUpdateRequest{
		Notes: &[]dtos.NoteInput{{ID: &n1, Text: "called"}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Notes, 1)
	assert.Equal(t, "called", updated.Notes[0].Text)

	var remaining int64
	require.NoError(t, target.Model(&models.Note{}).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)
}
