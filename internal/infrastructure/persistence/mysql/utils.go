package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-api/pkg/pagination"
)

// isDuplicateError 判断是否为唯一索引冲突
// MySQL 1062: Duplicate entry 'xxx' for key 'yyy'
// SQLite: UNIQUE constraint failed
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// likeEscaper 转义 LIKE 通配符，配合 ESCAPE '!' 使用
// 不用反斜杠：MySQL 字符串里的 '\' 还要再转义一次，SQLite 不需要
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern 子串匹配的 LIKE 参数，关键字按字面匹配
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

// notDeleted 排除软删除行
func notDeleted(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table + ".deleted_at IS NULL")
	}
}

// paginate ORDER BY <field> <dir>, id ASC + LIMIT/OFFSET
// field 已经过白名单校验
func paginate(req pagination.Request) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order(clause.OrderByColumn{
			Column: clause.Column{Name: req.Field},
			Desc:   req.Dir == pagination.DESC,
		})
		if req.Field != "id" {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
		}
		return db.Limit(req.Size).Offset(req.Offset())
	}
}
