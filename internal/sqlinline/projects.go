package sqlinline

const projectColumns = `id, name, description, full_amount, invested_amount, fully_invested, create_date, close_date`

const QInsertProject = `--sql 59277811-d00e-46f3-b001-993f3bc28eac
insert into charity_project(name, description, full_amount, invested_amount, fully_invested, create_date)
values ($1::text, $2::text, $3::bigint, 0, false, now())
returning id, create_date;
`

const QGetProject = `--sql 6a4e2751-cf25-4e0d-98aa-ce0640032298
select ` + projectColumns + `
from charity_project
where id = $1::bigint;
`

const QGetProjectIDByName = `--sql bc89c134-08d9-4118-812b-2cb2030cb248
select id
from charity_project
where name = $1::text;
`

const QListProjects = `--sql bba03099-c5c0-40ef-ba40-f50959848883
select ` + projectColumns + `
from charity_project
order by create_date asc, id asc;
`

const QListOpenProjects = `--sql 71e5c62c-e144-489a-85cb-08cd91cbd1a6
select ` + projectColumns + `
from charity_project
where fully_invested = false
order by create_date asc, id asc;
`

const QUpdateProject = `--sql 70128ba3-2553-4aba-a9d9-cf7115d52973
update charity_project
set name = $2::text,
    description = $3::text,
    full_amount = $4::bigint,
    fully_invested = $5::boolean,
    close_date = $6::timestamptz
where id = $1::bigint
  and fully_invested = false
  and invested_amount <= $4::bigint;
`

const QDeleteProject = `--sql 37a4defd-2bc7-433e-bbd2-1272d1338f61
delete from charity_project
where id = $1::bigint
  and invested_amount = 0;
`

const QCommitProject = `--sql 1e3cee98-95f9-46c3-bbc1-45001f6bdd0a
update charity_project
set invested_amount = $2::bigint,
    fully_invested = $3::boolean,
    close_date = $4::timestamptz
where id = $1::bigint
  and fully_invested = false
  and invested_amount = $5::bigint
  and full_amount = $6::bigint;
`
