package repositoryImp

import (
	"gorm.io/gorm"

	"vyron/entities"
	"vyron/pkg/brain/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ChunkRepository { return &repo{db} }

func (r *repo) BulkInsert(cs []entities.DocumentChunk) error {
	if len(cs) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error { return tx.Create(&cs).Error })
}

func (r *repo) ReplaceSource(source string, cs []entities.DocumentChunk) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("source_name = ?", source).Delete(&entities.DocumentChunk{}).Error; err != nil {
			return err
		}
		if len(cs) == 0 {
			return nil
		}
		return tx.Create(&cs).Error
	})
}

func (r *repo) NextSequence(source string) (int, error) {
	var next int
	err := r.db.Model(&entities.DocumentChunk{}).
		Where("source_name = ?", source).
		Select("COALESCE(MAX(sequence_index)+1, 0)").
		Scan(&next).Error
	return next, err
}

func (r *repo) CandidatesBySource(source string) ([]entities.DocumentChunk, error) {
	var cs []entities.DocumentChunk
	q := r.db.Order("created_at, source_name, sequence_index")
	if source != "" {
		q = q.Where("source_name = ?", source)
	}
	return cs, q.Find(&cs).Error
}

func (r *repo) Count() (int64, error) {
	var n int64
	return n, r.db.Model(&entities.DocumentChunk{}).Count(&n).Error
}

func (r *repo) CountBySource() ([]repository.SourceCount, error) {
	var out []repository.SourceCount
	err := r.db.Model(&entities.DocumentChunk{}).
		Select("source_name, COUNT(*) AS chunk_count").
		Group("source_name").
		Order("source_name").
		Scan(&out).Error
	return out, err
}

func (r *repo) DeleteBySource(source string) (int64, error) {
	res := r.db.Where("source_name = ?", source).Delete(&entities.DocumentChunk{})
	return res.RowsAffected, res.Error
}
