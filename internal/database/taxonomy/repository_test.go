package taxonomy

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/resumoteca/resumoteca/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_taxonomy_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Category{},
		&entities.Theme{},
		&entities.Book{},
		&entities.KeyTakeaway{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func TestRepository_GetOrCreateCategory_New(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	category, err := repo.GetOrCreateCategory(nil, "Produtividade")

	require.NoError(t, err)
	assert.NotZero(t, category.ID)
	assert.Equal(t, "Produtividade", category.Name)
}

func TestRepository_GetOrCreateCategory_Existing(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := repo.GetOrCreateCategory(nil, "Psicologia")
	require.NoError(t, err)

	second, err := repo.GetOrCreateCategory(nil, "Psicologia")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestRepository_GetOrCreateCategory_ExactMatchOnly(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	// Dictionary matching is exact: a different casing is a different entry
	first, err := repo.GetOrCreateCategory(nil, "Negócios")
	require.NoError(t, err)

	second, err := repo.GetOrCreateCategory(nil, "negócios")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	var count int64
	db.Model(&entities.Category{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestRepository_GetOrCreateTheme(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := repo.GetOrCreateTheme(nil, "Hábitos")
	require.NoError(t, err)

	second, err := repo.GetOrCreateTheme(nil, "Hábitos")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestRepository_ListCategories_Ordered(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	for _, name := range []string{"Saúde", "Filosofia", "Liderança"} {
		_, err := repo.GetOrCreateCategory(nil, name)
		require.NoError(t, err)
	}

	categories, err := repo.ListCategories()
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Filosofia", categories[0].Name)
	assert.Equal(t, "Liderança", categories[1].Name)
	assert.Equal(t, "Saúde", categories[2].Name)
}

func TestRepository_GetCategoryByName(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetOrCreateCategory(nil, "Filosofia")
	require.NoError(t, err)

	category, err := repo.GetCategoryByName("Filosofia")
	require.NoError(t, err)
	assert.Equal(t, "Filosofia", category.Name)

	_, err = repo.GetCategoryByName("filosofia")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_CategoryBookCount(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	category, err := repo.GetOrCreateCategory(nil, "Produtividade")
	require.NoError(t, err)

	book := entities.Book{Title: "Deep Work", Author: "Cal Newport", Slug: "deep-work"}
	require.NoError(t, db.Create(&book).Error)
	require.NoError(t, db.Model(&book).Association("Categories").Append(category))

	count, err := repo.CategoryBookCount(category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_DeleteOrphanCategories(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	linked, err := repo.GetOrCreateCategory(nil, "Produtividade")
	require.NoError(t, err)
	_, err = repo.GetOrCreateCategory(nil, "Negócios")
	require.NoError(t, err)
	_, err = repo.GetOrCreateCategory(nil, "Saúde")
	require.NoError(t, err)

	book := entities.Book{Title: "Deep Work", Author: "Cal Newport", Slug: "deep-work"}
	require.NoError(t, db.Create(&book).Error)
	require.NoError(t, db.Model(&book).Association("Categories").Append(linked))

	// Saúde is protected, Negócios is orphaned and unprotected
	deleted, err := repo.DeleteOrphanCategories([]string{"Saúde"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var names []string
	db.Model(&entities.Category{}).Order("name").Pluck("name", &names)
	assert.Equal(t, []string{"Produtividade", "Saúde"}, names)
}

func TestRepository_DeleteOrphanThemes(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	linked, err := repo.GetOrCreateTheme(nil, "Foco")
	require.NoError(t, err)
	_, err = repo.GetOrCreateTheme(nil, "Hábitos")
	require.NoError(t, err)

	book := entities.Book{Title: "Deep Work", Author: "Cal Newport", Slug: "deep-work"}
	require.NoError(t, db.Create(&book).Error)
	require.NoError(t, db.Model(&book).Association("Themes").Append(linked))

	deleted, err := repo.DeleteOrphanThemes()
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var names []string
	db.Model(&entities.Theme{}).Pluck("name", &names)
	assert.Equal(t, []string{"Foco"}, names)
}
